package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta a un cliente. UnitCost es el costo promedio del producto al momento de vender.
type Sale struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Profit      decimal.Decimal
	Margin      decimal.Decimal // porcentaje
	Customer    string
	Date        time.Time
	UserID      string
	CreatedAt   time.Time
}
