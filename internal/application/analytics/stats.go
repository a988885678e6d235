package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
)

// productStats acumulados de compras y ventas de un producto en un período.
type productStats struct {
	ProductID  string
	Name       string
	Purchased  decimal.Decimal
	Investment decimal.Decimal
	Sold       decimal.Decimal
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	Profit     decimal.Decimal

	purchaseLines []finance.PurchaseLine
	saleLines     []finance.PurchaseLine
}

// Margin margen realizado: (ingresos - costo) / ingresos * 100.
func (s *productStats) Margin() decimal.Decimal {
	return finance.Margin(s.Revenue, s.Cost)
}

// AvgPurchasePrice precio de compra promedio ponderado del período.
func (s *productStats) AvgPurchasePrice() decimal.Decimal {
	return finance.WeightedAverageCost(s.purchaseLines)
}

// AvgSalePrice precio de venta promedio ponderado del período.
func (s *productStats) AvgSalePrice() decimal.Decimal {
	return finance.WeightedAverageCost(s.saleLines)
}

func (s *productStats) hasSales() bool { return s.Sold.IsPositive() }

// collect agrupa compras y ventas por producto. El nombre sale de la última operación vista.
func collect(purchases []*entity.Purchase, sales []*entity.Sale) map[string]*productStats {
	out := make(map[string]*productStats)
	get := func(id, name string) *productStats {
		s, ok := out[id]
		if !ok {
			s = &productStats{ProductID: id, Name: name}
			out[id] = s
		}
		return s
	}
	for _, p := range purchases {
		s := get(p.ProductID, p.ProductName)
		s.Purchased = s.Purchased.Add(p.Quantity)
		s.Investment = s.Investment.Add(p.Total)
		s.purchaseLines = append(s.purchaseLines, finance.PurchaseLine{Quantity: p.Quantity, UnitPrice: p.UnitPrice})
	}
	for _, v := range sales {
		s := get(v.ProductID, v.ProductName)
		s.Sold = s.Sold.Add(v.Quantity)
		s.Revenue = s.Revenue.Add(v.Total)
		s.Cost = s.Cost.Add(v.TotalCost)
		s.Profit = s.Profit.Add(v.Profit)
		s.saleLines = append(s.saleLines, finance.PurchaseLine{Quantity: v.Quantity, UnitPrice: v.UnitPrice})
	}
	return out
}

func sumSales(sales []*entity.Sale, keep func(*entity.Sale) bool) (revenue, cost, profit decimal.Decimal) {
	for _, s := range sales {
		if keep(s) {
			revenue = revenue.Add(s.Total)
			cost = cost.Add(s.TotalCost)
			profit = profit.Add(s.Profit)
		}
	}
	return
}
