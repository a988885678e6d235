package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
)

// Tipos de movimiento del historial.
const (
	KindPurchase = "compra"
	KindSale     = "venta"
)

const maxHistoryLimit = 1000

// HistoryUseCase historial unificado de compras y ventas.
type HistoryUseCase struct {
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	currency  CurrencyResolver
	now       func() time.Time
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(purchases repository.PurchaseRepository, sales repository.SaleRepository, currency CurrencyResolver) *HistoryUseCase {
	return &HistoryUseCase{purchases: purchases, sales: sales, currency: currency, now: time.Now}
}

// List mezcla compras y ventas del filtro, más recientes primero, con totales del período.
// Sin fechas el período es abierto.
func (uc *HistoryUseCase) List(ctx context.Context, userID string, in dto.TradeListRequest) (*dto.HistoryResponse, error) {
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if kind != "" && kind != KindPurchase && kind != KindSale {
		return nil, fmt.Errorf("%w: tipo %q (use compra o venta)", domain.ErrInvalidInput, in.Kind)
	}
	period, err := ParsePeriod(in.From, in.To, 0, uc.now())
	if err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	filter := repository.TradeFilter{From: period.From, To: period.To, ProductID: in.ProductID, Limit: limit}

	var purchases []*entity.Purchase
	var sales []*entity.Sale
	if kind != KindSale {
		if purchases, err = uc.purchases.List(ctx, filter); err != nil {
			return nil, fmt.Errorf("historial: compras: %w", err)
		}
	}
	if kind != KindPurchase {
		if sales, err = uc.sales.List(ctx, filter); err != nil {
			return nil, fmt.Errorf("historial: ventas: %w", err)
		}
	}

	currency := uc.currency.CurrencyFor(ctx, userID)
	out := &dto.HistoryResponse{
		Period:       period.DTO(),
		Entries:      make([]dto.HistoryEntry, 0, len(purchases)+len(sales)),
		TotalSpent:   decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, p := range purchases {
		out.TotalSpent = out.TotalSpent.Add(p.Total)
		out.Entries = append(out.Entries, dto.HistoryEntry{
			Kind:           KindPurchase,
			ID:             p.ID,
			ProductID:      p.ProductID,
			ProductName:    p.ProductName,
			Quantity:       p.Quantity,
			UnitPrice:      p.UnitPrice,
			Total:          p.Total,
			Profit:         decimal.Zero,
			Counterpart:    p.Supplier,
			Date:           p.Date,
			TotalFormatted: finance.FormatCurrency(p.Total, currency),
		})
	}
	for _, s := range sales {
		out.TotalRevenue = out.TotalRevenue.Add(s.Total)
		out.TotalProfit = out.TotalProfit.Add(s.Profit)
		out.Entries = append(out.Entries, dto.HistoryEntry{
			Kind:            KindSale,
			ID:              s.ID,
			ProductID:       s.ProductID,
			ProductName:     s.ProductName,
			Quantity:        s.Quantity,
			UnitPrice:       s.UnitPrice,
			Total:           s.Total,
			Profit:          s.Profit,
			Counterpart:     s.Customer,
			Date:            s.Date,
			TotalFormatted:  finance.FormatCurrency(s.Total, currency),
			ProfitFormatted: finance.FormatCurrency(s.Profit, currency),
		})
	}
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Date.After(out.Entries[j].Date)
	})
	if len(out.Entries) > limit {
		out.Entries = out.Entries[:limit]
	}
	out.ROI = finance.ROI(out.TotalProfit, out.TotalSpent).Round(2)
	return out, nil
}
