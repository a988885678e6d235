package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra a un proveedor (entrada de mercancía).
type Purchase struct {
	ID          string
	ProductID   string
	ProductName string // copia del nombre al momento de la compra
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity * UnitPrice
	Supplier    string
	Date        time.Time
	Notes       string
	UserID      string
	CreatedAt   time.Time
}
