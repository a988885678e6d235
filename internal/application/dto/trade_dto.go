package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPurchaseRequest entrada del formulario de compra.
type RegisterPurchaseRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	Supplier  string          `json:"supplier" validate:"required"`
	Date      *time.Time      `json:"date"` // nil = ahora
	Notes     string          `json:"notes"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	Supplier       string          `json:"supplier"`
	Notes          string          `json:"notes,omitempty"`
	Date           time.Time       `json:"date"`
	NewAvgCost     decimal.Decimal `json:"new_avg_cost,omitempty"`
	NewStock       decimal.Decimal `json:"new_stock,omitempty"`
}

// RegisterSaleRequest entrada del formulario de venta.
type RegisterSaleRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	Customer  string          `json:"customer"`
	Date      *time.Time      `json:"date"`
}

// SaleResponse salida de una venta con el desglose de ganancia.
type SaleResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Total           decimal.Decimal `json:"total"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Profit          decimal.Decimal `json:"profit"`
	Margin          decimal.Decimal `json:"margin"`
	IsProfit        bool            `json:"is_profit"`
	TotalFormatted  string          `json:"total_formatted"`
	ProfitFormatted string          `json:"profit_formatted"`
	MarginFormatted string          `json:"margin_formatted"`
	Customer        string          `json:"customer,omitempty"`
	Date            time.Time       `json:"date"`
}

// TradeListRequest filtros para listar compras, ventas o el historial.
// Fechas en formato YYYY-MM-DD; To es inclusivo.
type TradeListRequest struct {
	Kind      string `query:"type"` // compra | venta | "" (ambos)
	From      string `query:"from"`
	To        string `query:"to"`
	ProductID string `query:"product_id"`
	Limit     int    `query:"limit"`
}

// HistoryEntry fila del historial unificado.
type HistoryEntry struct {
	Kind            string          `json:"type"` // compra | venta
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Total           decimal.Decimal `json:"total"`
	Profit          decimal.Decimal `json:"profit"`
	Counterpart     string          `json:"counterpart,omitempty"` // proveedor o cliente
	Date            time.Time       `json:"date"`
	TotalFormatted  string          `json:"total_formatted"`
	ProfitFormatted string          `json:"profit_formatted,omitempty"`
}

// HistoryResponse historial con totales del período.
type HistoryResponse struct {
	Period       PeriodDTO       `json:"period"`
	Entries      []HistoryEntry  `json:"entries"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	ROI          decimal.Decimal `json:"roi"`
}

// PeriodDTO rango de fechas de un reporte.
type PeriodDTO struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}
