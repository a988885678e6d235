package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
)

const (
	dailySeriesDays  = 30
	weeklySeriesDays = 7
	profitShareTop   = 4
	othersLabel      = "Otros"
)

// DashboardUseCase genera el resumen financiero de la pantalla principal.
type DashboardUseCase struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	currency  CurrencyResolver
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
	currency CurrencyResolver,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, purchases: purchases, sales: sales, currency: currency}
}

// GetSummary construye el DashboardSummaryDTO al momento now.
//
// Tres lecturas en paralelo:
//  1. catálogo completo       → valor de inventario, tabla de productos
//  2. compras desde "since"   → inversión vs retorno, rotación
//  3. ventas desde "since"    → ganancias, márgenes, series
//
// since es el más antiguo entre el día 1 del mes y el inicio de la serie de 30 días.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string, now time.Time) (*dto.DashboardSummaryDTO, error) {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -(weeklySeriesDays - 1))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	seriesStart := today.AddDate(0, 0, -(dailySeriesDays - 1))
	since := monthStart
	if seriesStart.Before(since) {
		since = seriesStart
	}
	window := repository.TradeFilter{From: since, To: tomorrow}

	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type purchasesResult struct {
		list []*entity.Purchase
		err  error
	}
	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	productsCh := make(chan productsResult, 1)
	purchasesCh := make(chan purchasesResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		list, err := uc.products.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.purchases.List(ctx, window)
		purchasesCh <- purchasesResult{list, err}
	}()
	go func() {
		list, err := uc.sales.List(ctx, window)
		salesCh <- salesResult{list, err}
	}()

	products := <-productsCh
	purchases := <-purchasesCh
	sales := <-salesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras: %w", purchases.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}

	between := func(from, to time.Time) func(*entity.Sale) bool {
		return func(s *entity.Sale) bool { return !s.Date.Before(from) && s.Date.Before(to) }
	}
	_, _, profitToday := sumSales(sales.list, between(today, tomorrow))
	_, _, profitWeek := sumSales(sales.list, between(weekStart, tomorrow))
	monthRevenue, monthCost, profitMonth := sumSales(sales.list, between(monthStart, tomorrow))
	averageMargin := finance.Margin(monthRevenue, monthCost)

	inventory := decimal.Zero
	for _, p := range products.list {
		inventory = inventory.Add(p.InventoryValue())
	}

	var monthSales []*entity.Sale
	for _, s := range sales.list {
		if !s.Date.Before(monthStart) {
			monthSales = append(monthSales, s)
		}
	}
	monthStats := collect(nil, monthSales)
	turnoverStats := collect(filterPurchases(purchases.list, seriesStart), filterSales(sales.list, seriesStart))

	margins := marginByProduct(monthStats)
	out := &dto.DashboardSummaryDTO{
		ProfitToday:        profitToday.Round(2),
		ProfitWeek:         profitWeek.Round(2),
		ProfitMonth:        profitMonth.Round(2),
		AverageMargin:      averageMargin.Round(2),
		InventoryValue:     inventory.Round(2),
		DailyProfit:        dailyProfit(sales.list, seriesStart, now.Location()),
		InvestmentVsReturn: investmentVsReturn(purchases.list, sales.list, weekStart, now.Location()),
		MarginByProduct:    margins,
		ProfitShare:        profitShare(monthStats),
		Products:           []dto.DashboardProductDTO{},
		Recommendations: dto.RecommendationGroupDTO{
			Green: []dto.RecommendationDTO{}, Yellow: []dto.RecommendationDTO{}, Red: []dto.RecommendationDTO{},
		},
		DateLabel: monthLabel(now),
	}
	if len(margins) > 0 {
		best, worst := margins[0], margins[len(margins)-1]
		out.BestProduct, out.WorstProduct = &best, &worst
	}

	for _, p := range products.list {
		if !p.Active {
			continue
		}
		row, rec := productRow(p, monthStats[p.ID], turnoverStats[p.ID])
		out.Products = append(out.Products, row)
		switch row.Status {
		case finance.StatusHigh:
			out.Recommendations.Green = append(out.Recommendations.Green, rec)
		case finance.StatusMedium, finance.StatusLow:
			out.Recommendations.Yellow = append(out.Recommendations.Yellow, rec)
		default:
			out.Recommendations.Red = append(out.Recommendations.Red, rec)
		}
	}

	currency := uc.currency.CurrencyFor(ctx, userID)
	out.Formatted = dto.DashboardFormattedDTO{
		ProfitToday:    finance.FormatCurrency(out.ProfitToday, currency),
		ProfitWeek:     finance.FormatCurrency(out.ProfitWeek, currency),
		ProfitMonth:    finance.FormatCurrency(out.ProfitMonth, currency),
		AverageMargin:  finance.FormatPercentage(out.AverageMargin, 1),
		InventoryValue: finance.FormatCurrency(out.InventoryValue, currency),
	}
	return out, nil
}

// productRow fila de la tabla. Sin ventas en el mes, el margen se estima con los precios promedio del catálogo.
func productRow(p *entity.Product, month, turnover *productStats) (dto.DashboardProductDTO, dto.RecommendationDTO) {
	margin := finance.Margin(p.AvgSalePrice, p.AvgCost)
	profit := decimal.Zero
	if month != nil && month.hasSales() {
		margin = month.Margin()
		profit = month.Profit
	}
	days := decimal.Zero
	if turnover != nil {
		days = finance.TurnoverDays(decimal.NewFromInt(dailySeriesDays), turnover.Sold, turnover.Purchased)
	}
	action := finance.Recommend(margin, finance.ClassifyVelocity(days))
	margin = margin.Round(2)
	row := dto.DashboardProductDTO{
		Name:   p.Name,
		Stock:  p.Stock,
		Margin: margin,
		Profit: profit.Round(2),
		Status: finance.ClassifyStatus(margin),
		Action: action,
	}
	return row, dto.RecommendationDTO{Name: p.Name, Margin: margin, Action: action}
}

func marginByProduct(stats map[string]*productStats) []dto.ProductMarginDTO {
	out := make([]dto.ProductMarginDTO, 0, len(stats))
	for _, s := range stats {
		if !s.hasSales() {
			continue
		}
		m := s.Margin().Round(2)
		out = append(out, dto.ProductMarginDTO{Name: s.Name, Margin: m, Color: finance.MarginColor(m)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Margin.Equal(out[j].Margin) {
			return out[i].Margin.GreaterThan(out[j].Margin)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// profitShare las profitShareTop mayores ganancias y el resto agrupado en "Otros". Solo ganancias positivas.
func profitShare(stats map[string]*productStats) []dto.ProfitShareDTO {
	var all []dto.ProfitShareDTO
	for _, s := range stats {
		if s.Profit.IsPositive() {
			all = append(all, dto.ProfitShareDTO{Name: s.Name, Value: s.Profit.Round(2)})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Value.Equal(all[j].Value) {
			return all[i].Value.GreaterThan(all[j].Value)
		}
		return all[i].Name < all[j].Name
	})
	if len(all) <= profitShareTop {
		return append([]dto.ProfitShareDTO{}, all...)
	}
	out := append([]dto.ProfitShareDTO{}, all[:profitShareTop]...)
	rest := decimal.Zero
	for _, s := range all[profitShareTop:] {
		rest = rest.Add(s.Value)
	}
	return append(out, dto.ProfitShareDTO{Name: othersLabel, Value: rest})
}

// dailyProfit ganancia por día desde start hasta hoy, etiquetas d/m.
func dailyProfit(sales []*entity.Sale, start time.Time, loc *time.Location) []dto.DailyProfitDTO {
	byDay := make(map[string]decimal.Decimal)
	for _, s := range sales {
		key := s.Date.In(loc).Format(dateLayout)
		byDay[key] = byDay[key].Add(s.Profit)
	}
	out := make([]dto.DailyProfitDTO, 0, dailySeriesDays)
	for i := 0; i < dailySeriesDays; i++ {
		day := start.AddDate(0, 0, i)
		out = append(out, dto.DailyProfitDTO{
			Label:  fmt.Sprintf("%d/%d", day.Day(), int(day.Month())),
			Profit: byDay[day.Format(dateLayout)].Round(2),
		})
	}
	return out
}

// investmentVsReturn compras vs ventas por día de la semana, últimos 7 días.
func investmentVsReturn(purchases []*entity.Purchase, sales []*entity.Sale, start time.Time, loc *time.Location) []dto.InvestmentReturnDTO {
	invest := make(map[string]decimal.Decimal)
	ret := make(map[string]decimal.Decimal)
	for _, p := range purchases {
		key := p.Date.In(loc).Format(dateLayout)
		invest[key] = invest[key].Add(p.Total)
	}
	for _, s := range sales {
		key := s.Date.In(loc).Format(dateLayout)
		ret[key] = ret[key].Add(s.Total)
	}
	out := make([]dto.InvestmentReturnDTO, 0, weeklySeriesDays)
	for i := 0; i < weeklySeriesDays; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(dateLayout)
		out = append(out, dto.InvestmentReturnDTO{
			Day:        weekdays[day.Weekday()],
			Investment: invest[key].Round(2),
			Return:     ret[key].Round(2),
		})
	}
	return out
}

func filterPurchases(list []*entity.Purchase, from time.Time) []*entity.Purchase {
	var out []*entity.Purchase
	for _, p := range list {
		if !p.Date.Before(from) {
			out = append(out, p)
		}
	}
	return out
}

func filterSales(list []*entity.Sale, from time.Time) []*entity.Sale {
	var out []*entity.Sale
	for _, s := range list {
		if !s.Date.Before(from) {
			out = append(out, s)
		}
	}
	return out
}
