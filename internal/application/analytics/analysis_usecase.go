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
	"github.com/jhoicas/verduras-pro/pkg/textsearch"
)

// DefaultAnalysisDays período por defecto del análisis por producto.
const DefaultAnalysisDays = 30

// ProductAnalysisUseCase rentabilidad y rotación por producto en un período.
type ProductAnalysisUseCase struct {
	products  repository.ProductRepository
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	now       func() time.Time
}

// NewProductAnalysisUseCase construye el caso de uso.
func NewProductAnalysisUseCase(
	products repository.ProductRepository,
	purchases repository.PurchaseRepository,
	sales repository.SaleRepository,
) *ProductAnalysisUseCase {
	return &ProductAnalysisUseCase{products: products, purchases: purchases, sales: sales, now: time.Now}
}

// List devuelve una fila por producto del catálogo que coincida con la búsqueda,
// ordenadas por ganancia descendente.
func (uc *ProductAnalysisUseCase) List(ctx context.Context, in dto.ProductAnalysisRequest) (*dto.ProductAnalysisResponse, error) {
	period, err := ParsePeriod(in.From, in.To, DefaultAnalysisDays, uc.now())
	if err != nil {
		return nil, err
	}
	filter := repository.TradeFilter{From: period.From, To: period.To}

	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("análisis: productos: %w", err)
	}
	purchases, err := uc.purchases.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("análisis: compras: %w", err)
	}
	sales, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("análisis: ventas: %w", err)
	}

	stats := collect(purchases, sales)
	days := decimal.NewFromInt(int64(period.Days()))
	items := make([]dto.ProductAnalysisDTO, 0, len(products))
	for _, p := range products {
		if !textsearch.Contains(p.Name, in.Search) && !textsearch.Contains(p.Category, in.Search) {
			continue
		}
		items = append(items, analyze(p, stats[p.ID], days))
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Profit.Equal(items[j].Profit) {
			return items[i].Profit.GreaterThan(items[j].Profit)
		}
		return textsearch.Fold(items[i].Name) < textsearch.Fold(items[j].Name)
	})
	return &dto.ProductAnalysisResponse{Period: period.DTO(), Items: items}, nil
}

// analyze arma la fila de un producto. Sin movimientos en el período se usan los promedios del catálogo.
func analyze(p *entity.Product, s *productStats, days decimal.Decimal) dto.ProductAnalysisDTO {
	if s == nil {
		s = &productStats{ProductID: p.ID, Name: p.Name}
	}
	avgPurchase := s.AvgPurchasePrice()
	if avgPurchase.IsZero() {
		avgPurchase = p.AvgCost
	}
	avgSale := s.AvgSalePrice()
	if avgSale.IsZero() {
		avgSale = p.AvgSalePrice
	}
	margin := finance.Margin(avgSale, avgPurchase)
	if s.hasSales() {
		margin = s.Margin()
	}
	turnover := finance.TurnoverDays(days, s.Sold, s.Purchased)
	velocity := finance.ClassifyVelocity(turnover)

	return dto.ProductAnalysisDTO{
		ProductID:      p.ID,
		Name:           p.Name,
		Purchased:      s.Purchased,
		Sold:           s.Sold,
		Stock:          p.Stock,
		AvgPurchase:    avgPurchase.Round(2),
		AvgSale:        avgSale.Round(2),
		Investment:     s.Investment.Round(2),
		Revenue:        s.Revenue.Round(2),
		Profit:         s.Profit.Round(2),
		Margin:         margin.Round(2),
		ROI:            finance.ROI(s.Profit, s.Investment).Round(2),
		TurnoverDays:   turnover.Round(1),
		Velocity:       velocity,
		Status:         finance.ClassifyStatus(margin),
		Recommendation: finance.Recommend(margin, velocity),
		Color:          finance.MarginColor(margin),
	}
}
