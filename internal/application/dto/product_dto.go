package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para agregar un producto al catálogo.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=120"`
	Category string          `json:"category"`
	Unit     string          `json:"unit" validate:"omitempty,oneof=kg unidad atado"`
	AvgCost  decimal.Decimal `json:"avg_cost"`
}

// UpdateProductRequest entrada para editar un producto; los campos nil no cambian.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Unit     *string          `json:"unit"`
	AvgCost  *decimal.Decimal `json:"avg_cost"`
	Active   *bool            `json:"active"`
}

// ProductListRequest filtros del listado del catálogo.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	OnlyActive bool   `query:"only_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category,omitempty"`
	Unit           string          `json:"unit"`
	AvgCost        decimal.Decimal `json:"avg_cost"`
	AvgSalePrice   decimal.Decimal `json:"avg_sale_price"`
	Stock          decimal.Decimal `json:"stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SeedResponse resultado de cargar el catálogo inicial.
type SeedResponse struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}
