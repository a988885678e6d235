package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/report"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/pdf"
)

func TestGenerateHistoryPDF(t *testing.T) {
	date := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	hist := &dto.HistoryResponse{
		Period: dto.PeriodDTO{From: "2026-03-01", To: "2026-03-10"},
		Entries: []dto.HistoryEntry{
			{Kind: "venta", ProductName: "Tomates", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("3.5"),
				Total: decimal.NewFromInt(35), Profit: decimal.NewFromInt(15), Date: date},
			{Kind: "venta", ProductName: "Papas", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.RequireFromString("1.4"),
				Total: decimal.NewFromInt(28), Profit: decimal.NewFromInt(-2), Date: date},
			{Kind: "compra", ProductName: "Tomates", Quantity: decimal.NewFromInt(50), UnitPrice: decimal.NewFromInt(2),
				Total: decimal.NewFromInt(100), Counterpart: "Central de Abasto", Date: date.AddDate(0, 0, -9)},
		},
		TotalSpent:   decimal.NewFromInt(100),
		TotalRevenue: decimal.NewFromInt(63),
		TotalProfit:  decimal.NewFromInt(13),
		ROI:          decimal.NewFromInt(13),
	}

	doc, err := pdf.NewMarotoPDFGenerator().GenerateHistoryPDF(context.Background(), report.HistoryReport{
		BusinessName: "La Huerta", Currency: "MXN", GeneratedAt: date, History: hist,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateHistoryPDF_Empty(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()

	doc, err := g.GenerateHistoryPDF(context.Background(), report.HistoryReport{History: &dto.HistoryResponse{}})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)

	_, err = g.GenerateHistoryPDF(context.Background(), report.HistoryReport{})
	assert.Error(t, err)
}
