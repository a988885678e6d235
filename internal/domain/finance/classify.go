package finance

import "github.com/shopspring/decimal"

// Estado de un producto en la tabla del dashboard, según su margen.
const (
	StatusHigh     = "alto"
	StatusMedium   = "medio"
	StatusLow      = "bajo"
	StatusCritical = "critico"
)

// Velocidad de rotación.
const (
	VelocityFast   = "Alta"
	VelocityMedium = "Media"
	VelocitySlow   = "Lenta"
)

// Recomendaciones de compra.
const (
	RecommendBuyMore = "Comprar más"
	RecommendKeep    = "Mantener"
	RecommendWatch   = "Monitorear"
	RecommendReduce  = "Reducir"
	RecommendAvoid   = "Evitar"
)

type colorBand struct {
	min   decimal.Decimal
	color string
}

var marginColors = []colorBand{
	{decimal.NewFromInt(40), "#22C55E"},
	{decimal.NewFromInt(25), "#16A34A"},
	{decimal.NewFromInt(15), "#F59E0B"},
	{decimal.NewFromInt(10), "#EF4444"},
}

const marginColorCritical = "#DC2626"

var (
	statusHighMin   = decimal.NewFromInt(35)
	statusMediumMin = decimal.NewFromInt(20)
	statusLowMin    = decimal.NewFromInt(10)

	fastMaxDays   = decimal.NewFromInt(7)
	mediumMaxDays = decimal.NewFromInt(14)

	buyMoreMin = decimal.NewFromInt(35)
	keepMin    = decimal.NewFromInt(25)
	watchMin   = decimal.NewFromInt(15)
)

// MarginColor color de la barra de margen en las gráficas.
func MarginColor(margin decimal.Decimal) string {
	for _, b := range marginColors {
		if margin.GreaterThanOrEqual(b.min) {
			return b.color
		}
	}
	return marginColorCritical
}

// ClassifyStatus clasifica el margen en alto / medio / bajo / critico.
func ClassifyStatus(margin decimal.Decimal) string {
	switch {
	case margin.GreaterThanOrEqual(statusHighMin):
		return StatusHigh
	case margin.GreaterThanOrEqual(statusMediumMin):
		return StatusMedium
	case margin.GreaterThanOrEqual(statusLowMin):
		return StatusLow
	default:
		return StatusCritical
	}
}

// ClassifyVelocity clasifica los días de rotación. 0 significa sin ventas: Lenta.
func ClassifyVelocity(turnoverDays decimal.Decimal) string {
	switch {
	case !turnoverDays.IsPositive():
		return VelocitySlow
	case turnoverDays.LessThanOrEqual(fastMaxDays):
		return VelocityFast
	case turnoverDays.LessThanOrEqual(mediumMaxDays):
		return VelocityMedium
	default:
		return VelocitySlow
	}
}

// Recommend sugiere qué hacer con un producto a partir de su margen y velocidad.
func Recommend(margin decimal.Decimal, velocity string) string {
	switch {
	case margin.GreaterThanOrEqual(buyMoreMin) && velocity == VelocityFast:
		return RecommendBuyMore
	case margin.GreaterThanOrEqual(keepMin):
		return RecommendKeep
	case margin.GreaterThanOrEqual(watchMin):
		return RecommendWatch
	case !margin.IsNegative():
		return RecommendReduce
	default:
		return RecommendAvoid
	}
}
