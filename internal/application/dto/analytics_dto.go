package dto

import "github.com/shopspring/decimal"

// ProductAnalysisRequest filtros de GET /api/analytics/products.
type ProductAnalysisRequest struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Search string `query:"search"`
}

// ProductAnalysisDTO fila de la pantalla de análisis por producto.
type ProductAnalysisDTO struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	Purchased      decimal.Decimal `json:"purchased"`
	Sold           decimal.Decimal `json:"sold"`
	Stock          decimal.Decimal `json:"stock"`
	AvgPurchase    decimal.Decimal `json:"avg_purchase_price"`
	AvgSale        decimal.Decimal `json:"avg_sale_price"`
	Investment     decimal.Decimal `json:"investment"`
	Revenue        decimal.Decimal `json:"revenue"`
	Profit         decimal.Decimal `json:"profit"`
	Margin         decimal.Decimal `json:"margin"`
	ROI            decimal.Decimal `json:"roi"`
	TurnoverDays   decimal.Decimal `json:"turnover_days"`
	Velocity       string          `json:"velocity"`
	Status         string          `json:"status"`
	Recommendation string          `json:"recommendation"`
	Color          string          `json:"color"`
}

// ProductAnalysisResponse listado de análisis.
type ProductAnalysisResponse struct {
	Period PeriodDTO            `json:"period"`
	Items  []ProductAnalysisDTO `json:"items"`
}
