package trade

import (
	"context"

	"github.com/jhoicas/verduras-pro/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		purchases repository.PurchaseRepository,
		sales repository.SaleRepository,
	) error) error
}

// CurrencyResolver moneda con la que se formatean los montos de un usuario.
type CurrencyResolver interface {
	CurrencyFor(ctx context.Context, userID string) string
}

// FixedCurrency resolver que siempre devuelve la misma moneda.
type FixedCurrency string

// CurrencyFor implementa CurrencyResolver.
func (c FixedCurrency) CurrencyFor(context.Context, string) string { return string(c) }
