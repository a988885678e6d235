package repository

import (
	"context"

	"github.com/jhoicas/verduras-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// GetByID, GetForUpdate y GetByName devuelven (nil, nil) si no existe.
// GetForUpdate bloquea la fila hasta el fin de la transacción en curso.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
