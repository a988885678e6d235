package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/verduras-pro/internal/domain/finance"
)

func TestMarginColor(t *testing.T) {
	assert.Equal(t, "#22C55E", finance.MarginColor(d("45")))
	assert.Equal(t, "#22C55E", finance.MarginColor(d("40")))
	assert.Equal(t, "#16A34A", finance.MarginColor(d("30")))
	assert.Equal(t, "#F59E0B", finance.MarginColor(d("15")))
	assert.Equal(t, "#EF4444", finance.MarginColor(d("10")))
	assert.Equal(t, "#DC2626", finance.MarginColor(d("5")))
	assert.Equal(t, "#DC2626", finance.MarginColor(d("-2")))
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, finance.StatusHigh, finance.ClassifyStatus(d("45")))
	assert.Equal(t, finance.StatusHigh, finance.ClassifyStatus(d("35")))
	assert.Equal(t, finance.StatusMedium, finance.ClassifyStatus(d("25")))
	assert.Equal(t, finance.StatusLow, finance.ClassifyStatus(d("15")))
	assert.Equal(t, finance.StatusCritical, finance.ClassifyStatus(d("5")))
}

func TestClassifyVelocity(t *testing.T) {
	assert.Equal(t, finance.VelocitySlow, finance.ClassifyVelocity(d("0")), "sin ventas")
	assert.Equal(t, finance.VelocityFast, finance.ClassifyVelocity(d("3.5")))
	assert.Equal(t, finance.VelocityFast, finance.ClassifyVelocity(d("7")))
	assert.Equal(t, finance.VelocityMedium, finance.ClassifyVelocity(d("12")))
	assert.Equal(t, finance.VelocitySlow, finance.ClassifyVelocity(d("34.29")))
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, finance.RecommendBuyMore, finance.Recommend(d("42.8"), finance.VelocityFast))
	assert.Equal(t, finance.RecommendKeep, finance.Recommend(d("40"), finance.VelocityMedium))
	assert.Equal(t, finance.RecommendKeep, finance.Recommend(d("31.8"), finance.VelocityFast))
	assert.Equal(t, finance.RecommendWatch, finance.Recommend(d("22.2"), finance.VelocityMedium))
	assert.Equal(t, finance.RecommendReduce, finance.Recommend(d("10"), finance.VelocitySlow))
	assert.Equal(t, finance.RecommendReduce, finance.Recommend(d("0"), finance.VelocitySlow))
	assert.Equal(t, finance.RecommendAvoid, finance.Recommend(d("-4.2"), finance.VelocitySlow))
}
