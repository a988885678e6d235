package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ProfitToday    decimal.Decimal `json:"profit_today"`
	ProfitWeek     decimal.Decimal `json:"profit_week"`  // últimos 7 días
	ProfitMonth    decimal.Decimal `json:"profit_month"` // mes en curso
	AverageMargin  decimal.Decimal `json:"average_margin"`
	InventoryValue decimal.Decimal `json:"inventory_value"`

	BestProduct  *ProductMarginDTO `json:"best_product,omitempty"`
	WorstProduct *ProductMarginDTO `json:"worst_product,omitempty"`

	DailyProfit        []DailyProfitDTO       `json:"daily_profit"`         // 30 días
	InvestmentVsReturn []InvestmentReturnDTO  `json:"investment_vs_return"` // 7 días
	MarginByProduct    []ProductMarginDTO     `json:"margin_by_product"`
	ProfitShare        []ProfitShareDTO       `json:"profit_share"`
	Products           []DashboardProductDTO  `json:"products"`
	Recommendations    RecommendationGroupDTO `json:"recommendations"`

	Formatted DashboardFormattedDTO `json:"formatted"`
	DateLabel string                `json:"date_label"`
}

// DashboardFormattedDTO KPIs ya formateados en la moneda del usuario.
type DashboardFormattedDTO struct {
	ProfitToday    string `json:"profit_today"`
	ProfitWeek     string `json:"profit_week"`
	ProfitMonth    string `json:"profit_month"`
	AverageMargin  string `json:"average_margin"`
	InventoryValue string `json:"inventory_value"`
}

// ProductMarginDTO margen de un producto con su color de gráfica.
type ProductMarginDTO struct {
	Name   string          `json:"name"`
	Margin decimal.Decimal `json:"margin"`
	Color  string          `json:"color"`
}

// DailyProfitDTO ganancia de un día (etiqueta d/m).
type DailyProfitDTO struct {
	Label  string          `json:"label"`
	Profit decimal.Decimal `json:"profit"`
}

// InvestmentReturnDTO compras vs ventas de un día de la semana.
type InvestmentReturnDTO struct {
	Day        string          `json:"day"`
	Investment decimal.Decimal `json:"investment"`
	Return     decimal.Decimal `json:"return"`
}

// ProfitShareDTO porción de la distribución de ganancias.
type ProfitShareDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardProductDTO fila de la tabla de productos del dashboard.
type DashboardProductDTO struct {
	Name   string          `json:"name"`
	Stock  decimal.Decimal `json:"stock"`
	Margin decimal.Decimal `json:"margin"`
	Profit decimal.Decimal `json:"profit"`
	Status string          `json:"status"`
	Action string          `json:"action"`
}

// RecommendationDTO recomendación puntual.
type RecommendationDTO struct {
	Name   string          `json:"name"`
	Margin decimal.Decimal `json:"margin"`
	Action string          `json:"action"`
}

// RecommendationGroupDTO recomendaciones por semáforo.
type RecommendationGroupDTO struct {
	Green  []RecommendationDTO `json:"green"`
	Yellow []RecommendationDTO `json:"yellow"`
	Red    []RecommendationDTO `json:"red"`
}
