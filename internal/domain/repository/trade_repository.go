package repository

import (
	"context"
	"time"

	"github.com/jhoicas/verduras-pro/internal/domain/entity"
)

// TradeFilter filtro común para compras y ventas. Fechas cero = sin límite.
// From es inclusivo y To exclusivo.
type TradeFilter struct {
	From      time.Time
	To        time.Time
	ProductID string
	Limit     int // 0 = sin límite
}

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	List(ctx context.Context, filter TradeFilter) ([]*entity.Purchase, error)
}

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, filter TradeFilter) ([]*entity.Sale, error)
}
