package dto

import "github.com/shopspring/decimal"

// PurchaseLineDTO par cantidad/precio para el promedio ponderado.
type PurchaseLineDTO struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// WeightedAverageRequest entrada de POST /api/calc/weighted-average.
type WeightedAverageRequest struct {
	Purchases []PurchaseLineDTO `json:"purchases"`
}

// MarginRequest entrada de POST /api/calc/margin.
type MarginRequest struct {
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// SaleProfitRequest entrada de POST /api/calc/sale-profit.
type SaleProfitRequest struct {
	Quantity      decimal.Decimal `json:"quantity"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// SaleProfitResponse desglose de ganancia.
type SaleProfitResponse struct {
	Total  decimal.Decimal `json:"total"`
	Cost   decimal.Decimal `json:"cost"`
	Profit decimal.Decimal `json:"profit"`
	Margin decimal.Decimal `json:"margin"`
}

// ROIRequest entrada de POST /api/calc/roi.
type ROIRequest struct {
	Profit     decimal.Decimal `json:"profit"`
	Investment decimal.Decimal `json:"investment"`
}

// TurnoverRequest entrada de POST /api/calc/turnover.
type TurnoverRequest struct {
	DaysInStock       decimal.Decimal `json:"days_in_stock"`
	QuantitySold      decimal.Decimal `json:"quantity_sold"`
	QuantityPurchased decimal.Decimal `json:"quantity_purchased"`
}

// FormatRequest entrada de POST /api/calc/format.
type FormatRequest struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
	Decimals *int            `json:"decimals" minimum:"0" maximum:"100"`
}

// FormatResponse valor formateado como moneda y como porcentaje.
type FormatResponse struct {
	Currency   string `json:"currency"`
	Percentage string `json:"percentage"`
}

// ValueResponse resultado numérico simple.
type ValueResponse struct {
	Value decimal.Decimal `json:"value"`
}
