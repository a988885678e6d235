package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/sqlite"
)

type fixedCurrency string

func (c fixedCurrency) CurrencyFor(context.Context, string) string { return string(c) }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// martes 10 de marzo de 2026, 15:00 UTC
var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

type store struct {
	products  *sqlite.ProductRepo
	purchases *sqlite.PurchaseRepo
	sales     *sqlite.SaleRepo
}

func seededStore(t *testing.T) *store {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := &store{
		products:  sqlite.NewProductRepository(db),
		purchases: sqlite.NewPurchaseRepository(db),
		sales:     sqlite.NewSaleRepository(db),
	}
	ctx := context.Background()

	for _, p := range []*entity.Product{
		{ID: "tom", Name: "Tomates", Unit: entity.UnitKg, AvgCost: d("2"), AvgSalePrice: d("3.5"), Stock: d("40"), Active: true},
		{ID: "pap", Name: "Papas", Unit: entity.UnitKg, AvgCost: d("1.5"), Stock: d("100"), Active: true},
		{ID: "chi", Name: "Chiles", Unit: entity.UnitKg, AvgCost: d("3"), Stock: decimal.Zero, Active: false},
	} {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, s.products.Create(ctx, p))
	}

	at := func(month time.Month, day, hour int) time.Time { return time.Date(2026, month, day, hour, 0, 0, 0, time.UTC) }
	purchase := func(id, pid, name, qty, price, supplier string, date time.Time) {
		q, pr := d(qty), d(price)
		require.NoError(t, s.purchases.Create(ctx, &entity.Purchase{
			ID: id, ProductID: pid, ProductName: name, Quantity: q, UnitPrice: pr, Total: q.Mul(pr),
			Supplier: supplier, Date: date, CreatedAt: date,
		}))
	}
	sale := func(id, pid, name, qty, price, cost string, date time.Time) {
		r := finance.SaleProfit(d(qty), d(price), d(cost))
		require.NoError(t, s.sales.Create(ctx, &entity.Sale{
			ID: id, ProductID: pid, ProductName: name, Quantity: d(qty), UnitPrice: d(price), Total: r.Total,
			UnitCost: d(cost), TotalCost: r.Cost, Profit: r.Profit, Margin: r.Margin.Round(4),
			Date: date, CreatedAt: date,
		}))
	}

	purchase("c1", "tom", "Tomates", "50", "2", "Central", at(time.March, 1, 8))
	purchase("c2", "pap", "Papas", "100", "1.5", "Rancho", at(time.March, 9, 8))
	sale("v1", "tom", "Tomates", "10", "3.5", "2", at(time.March, 10, 10))
	sale("v2", "pap", "Papas", "20", "1.4", "1.5", at(time.March, 9, 12))
	sale("v3", "tom", "Tomates", "5", "3", "2", at(time.February, 20, 12))
	return s
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2026-03-01", "2026-03-31", 30, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), p.From)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), p.To)
	assert.Equal(t, 31, p.Days())
	assert.Equal(t, dto.PeriodDTO{From: "2026-03-01", To: "2026-03-31"}, p.DTO())

	p, err = ParsePeriod("", "", 30, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), p.From)
	assert.Equal(t, 30, p.Days())

	p, err = ParsePeriod("", "", 0, now)
	require.NoError(t, err)
	assert.True(t, p.From.IsZero())
	assert.True(t, p.To.IsZero())
	assert.Equal(t, 0, p.Days())

	p, err = ParsePeriod("2026-03-10", "2026-03-10", 0, now)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Days())

	_, err = ParsePeriod("10/03/2026", "", 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = ParsePeriod("2026-03-11", "2026-03-10", 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Marzo 2026", monthLabel(now))
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDashboard_GetSummary(t *testing.T) {
	s := seededStore(t)
	uc := NewDashboardUseCase(s.products, s.purchases, s.sales, fixedCurrency("MXN"))

	out, err := uc.GetSummary(context.Background(), "u1", now)
	require.NoError(t, err)

	assert.Equal(t, "15.00", out.ProfitToday.StringFixed(2))
	assert.Equal(t, "13.00", out.ProfitWeek.StringFixed(2))
	assert.Equal(t, "13.00", out.ProfitMonth.StringFixed(2))
	assert.Equal(t, "20.63", out.AverageMargin.StringFixed(2))
	assert.Equal(t, "230.00", out.InventoryValue.StringFixed(2))
	assert.Equal(t, "Marzo 2026", out.DateLabel)
	assert.Equal(t, "$15.00", out.Formatted.ProfitToday)
	assert.Equal(t, "20.6%", out.Formatted.AverageMargin)
	assert.Equal(t, "$230.00", out.Formatted.InventoryValue)

	require.NotNil(t, out.BestProduct)
	require.NotNil(t, out.WorstProduct)
	assert.Equal(t, "Tomates", out.BestProduct.Name)
	assert.Equal(t, "42.86", out.BestProduct.Margin.StringFixed(2))
	assert.Equal(t, "#22C55E", out.BestProduct.Color)
	assert.Equal(t, "Papas", out.WorstProduct.Name)
	assert.Equal(t, "#DC2626", out.WorstProduct.Color)

	require.Len(t, out.DailyProfit, 30)
	assert.Equal(t, "9/2", out.DailyProfit[0].Label)
	assert.Equal(t, "5.00", out.DailyProfit[11].Profit.StringFixed(2))
	assert.Equal(t, "10/3", out.DailyProfit[29].Label)
	assert.Equal(t, "15.00", out.DailyProfit[29].Profit.StringFixed(2))

	require.Len(t, out.InvestmentVsReturn, 7)
	assert.Equal(t, "Mié", out.InvestmentVsReturn[0].Day)
	assert.Equal(t, "Lun", out.InvestmentVsReturn[5].Day)
	assert.Equal(t, "150.00", out.InvestmentVsReturn[5].Investment.StringFixed(2))
	assert.Equal(t, "28.00", out.InvestmentVsReturn[5].Return.StringFixed(2))
	assert.Equal(t, "Mar", out.InvestmentVsReturn[6].Day)
	assert.Equal(t, "35.00", out.InvestmentVsReturn[6].Return.StringFixed(2))

	require.Len(t, out.ProfitShare, 1)
	assert.Equal(t, "Tomates", out.ProfitShare[0].Name)

	require.Len(t, out.Products, 2, "los inactivos no aparecen")
	byName := map[string]dto.DashboardProductDTO{}
	for _, p := range out.Products {
		byName[p.Name] = p
	}
	assert.Equal(t, finance.StatusHigh, byName["Tomates"].Status)
	assert.Equal(t, finance.RecommendKeep, byName["Tomates"].Action)
	assert.Equal(t, finance.StatusCritical, byName["Papas"].Status)
	assert.Equal(t, finance.RecommendAvoid, byName["Papas"].Action)

	require.Len(t, out.Recommendations.Green, 1)
	require.Len(t, out.Recommendations.Red, 1)
	assert.Empty(t, out.Recommendations.Yellow)
}

func TestDashboard_Empty(t *testing.T) {
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()
	uc := NewDashboardUseCase(sqlite.NewProductRepository(db), sqlite.NewPurchaseRepository(db), sqlite.NewSaleRepository(db), fixedCurrency("MXN"))

	out, err := uc.GetSummary(context.Background(), "", now)
	require.NoError(t, err)
	assert.True(t, out.AverageMargin.IsZero())
	assert.Nil(t, out.BestProduct)
	assert.Empty(t, out.ProfitShare)
	assert.NotNil(t, out.Products)
	assert.Len(t, out.DailyProfit, 30)
	assert.Equal(t, "$0.00", out.Formatted.ProfitMonth)
}

func TestProfitShare_TopFourPlusOthers(t *testing.T) {
	stats := map[string]*productStats{}
	for i, v := range []string{"50", "40", "30", "20", "10", "5", "-3"} {
		id := string(rune('a' + i))
		stats[id] = &productStats{ProductID: id, Name: "P" + id, Profit: d(v)}
	}
	out := profitShare(stats)
	require.Len(t, out, 5)
	assert.Equal(t, "Pa", out[0].Name)
	assert.Equal(t, othersLabel, out[4].Name)
	assert.Equal(t, "15", out[4].Value.String())
}

func TestProductAnalysis_List(t *testing.T) {
	s := seededStore(t)
	uc := NewProductAnalysisUseCase(s.products, s.purchases, s.sales)
	uc.now = func() time.Time { return now }

	out, err := uc.List(context.Background(), dto.ProductAnalysisRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.PeriodDTO{From: "2026-02-09", To: "2026-03-10"}, out.Period)
	require.Len(t, out.Items, 3)
	assert.Equal(t, []string{"Tomates", "Chiles", "Papas"}, []string{out.Items[0].Name, out.Items[1].Name, out.Items[2].Name})

	tom := out.Items[0]
	assert.True(t, tom.Purchased.Equal(d("50")))
	assert.True(t, tom.Sold.Equal(d("15")))
	assert.Equal(t, "100.00", tom.Investment.StringFixed(2))
	assert.Equal(t, "50.00", tom.Revenue.StringFixed(2))
	assert.Equal(t, "20.00", tom.Profit.StringFixed(2))
	assert.Equal(t, "40.00", tom.Margin.StringFixed(2))
	assert.Equal(t, "20.00", tom.ROI.StringFixed(2))
	assert.Equal(t, "2.00", tom.AvgPurchase.StringFixed(2))
	assert.Equal(t, "3.33", tom.AvgSale.StringFixed(2))
	assert.Equal(t, "100.0", tom.TurnoverDays.StringFixed(1))
	assert.Equal(t, finance.VelocitySlow, tom.Velocity)
	assert.Equal(t, finance.RecommendKeep, tom.Recommendation)
	assert.Equal(t, "#22C55E", tom.Color)

	chi := out.Items[1]
	assert.True(t, chi.TurnoverDays.IsZero(), "sin movimientos")
	assert.Equal(t, "3.00", chi.AvgPurchase.StringFixed(2), "cae al costo del catálogo")

	out, err = uc.List(context.Background(), dto.ProductAnalysisRequest{Search: "PAPA"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, finance.RecommendAvoid, out.Items[0].Recommendation)

	_, err = uc.List(context.Background(), dto.ProductAnalysisRequest{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_List(t *testing.T) {
	s := seededStore(t)
	uc := NewHistoryUseCase(s.purchases, s.sales, fixedCurrency("MXN"))
	uc.now = func() time.Time { return now }
	ctx := context.Background()

	all, err := uc.List(ctx, "u1", dto.TradeListRequest{})
	require.NoError(t, err)
	require.Len(t, all.Entries, 5)
	assert.Equal(t, "v1", all.Entries[0].ID)
	assert.Equal(t, KindSale, all.Entries[0].Kind)
	assert.Equal(t, "v3", all.Entries[4].ID)
	assert.Equal(t, "250.00", all.TotalSpent.StringFixed(2))
	assert.Equal(t, "78.00", all.TotalRevenue.StringFixed(2))
	assert.Equal(t, "18.00", all.TotalProfit.StringFixed(2))
	assert.Equal(t, "7.20", all.ROI.StringFixed(2))
	assert.Equal(t, dto.PeriodDTO{}, all.Period)

	sales, err := uc.List(ctx, "u1", dto.TradeListRequest{Kind: "VENTA"})
	require.NoError(t, err)
	assert.Len(t, sales.Entries, 3)
	assert.True(t, sales.TotalSpent.IsZero())
	assert.True(t, sales.ROI.IsZero(), "sin inversión el ROI es 0")

	day, err := uc.List(ctx, "u1", dto.TradeListRequest{From: "2026-03-09", To: "2026-03-09"})
	require.NoError(t, err)
	require.Len(t, day.Entries, 2)
	assert.Equal(t, "v2", day.Entries[0].ID)
	assert.Equal(t, "Rancho", day.Entries[1].Counterpart)
	assert.Equal(t, "-$2.00", day.Entries[0].ProfitFormatted)

	limited, err := uc.List(ctx, "u1", dto.TradeListRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited.Entries, 2)

	_, err = uc.List(ctx, "u1", dto.TradeListRequest{Kind: "devolucion"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
