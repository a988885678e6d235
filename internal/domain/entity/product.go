package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de venta permitidas.
const (
	UnitKg     = "kg"
	UnitPiece  = "unidad"
	UnitBundle = "atado"
)

// ValidUnit indica si u es una unidad reconocida.
func ValidUnit(u string) bool {
	return u == UnitKg || u == UnitPiece || u == UnitBundle
}

// Product representa un producto del catálogo de la verdulería.
// AvgCost es el costo promedio ponderado de compra; se recalcula con cada compra
// y también puede editarse a mano desde el catálogo.
type Product struct {
	ID           string
	Name         string
	Category     string
	Unit         string
	AvgCost      decimal.Decimal // costo promedio por unidad
	AvgSalePrice decimal.Decimal // precio de venta promedio ponderado por cantidad vendida
	SoldQty      decimal.Decimal // cantidad vendida acumulada, peso de AvgSalePrice
	Stock        decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryValue valor del stock al costo promedio.
func (p *Product) InventoryValue() decimal.Decimal {
	if !p.Stock.IsPositive() {
		return decimal.Zero
	}
	return p.Stock.Mul(p.AvgCost)
}
