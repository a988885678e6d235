// Package storage arma los repositorios del backend configurado (PostgreSQL o SQLite).
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/verduras-pro/internal/application/trade"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/postgres"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/sqlite"
	"github.com/jhoicas/verduras-pro/pkg/config"
)

// Store repositorios listos para usar más el cierre de la conexión.
type Store struct {
	Driver    string
	Products  repository.ProductRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Users     repository.UserRepository
	Tx        trade.TxRunner

	migrate func(ctx context.Context) error
	close   func()
}

// Open conecta al backend de cfg.Storage.Driver. No aplica el esquema; ver Migrate.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.StorageSQLite,
			Products:  sqlite.NewProductRepository(db),
			Purchases: sqlite.NewPurchaseRepository(db),
			Sales:     sqlite.NewSaleRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Tx:        sqlite.NewTxRunner(db),
			// sqlite.Open ya aplica el esquema
			migrate: func(ctx context.Context) error { return sqlite.EnsureSchema(ctx, db) },
			close:   func() { _ = db.Close() },
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.StoragePostgres,
			Products:  postgres.NewProductRepository(pool),
			Purchases: postgres.NewPurchaseRepository(pool),
			Sales:     postgres.NewSaleRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			migrate:   func(ctx context.Context) error { return postgres.EnsureSchema(ctx, pool) },
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %q", cfg.Storage.Driver)
	}
}

// Migrate crea tablas e índices si no existen. Es idempotente.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return fmt.Errorf("migrar esquema (%s): %w", s.Driver, err)
	}
	return nil
}

// Close libera la conexión.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
