// Package sqlite guarda el catálogo, las compras, las ventas y los usuarios en un
// archivo SQLite local (modernc.org/sqlite, sin cgo). Es el modo sin servidor de la API
// y el almacenamiento por defecto de la CLI.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Querier es lo común entre *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre (o crea) la base en path y aplica el esquema. ":memory:" sirve para pruebas.
// Se usa una sola conexión: SQLite admite un único escritor y así ":memory:" es una sola base.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		category       TEXT NOT NULL DEFAULT '',
		unit           TEXT NOT NULL DEFAULT 'kg',
		avg_cost       TEXT NOT NULL DEFAULT '0',
		avg_sale_price TEXT NOT NULL DEFAULT '0',
		sold_qty       TEXT NOT NULL DEFAULT '0',
		stock          TEXT NOT NULL DEFAULT '0',
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     INTEGER NOT NULL,
		updated_at     INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_name_lower_idx ON products (lower(name))`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id           TEXT PRIMARY KEY,
		product_id   TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity     TEXT NOT NULL,
		unit_price   TEXT NOT NULL,
		total        TEXT NOT NULL,
		supplier     TEXT NOT NULL,
		date         INTEGER NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		user_id      TEXT NOT NULL DEFAULT '',
		created_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS purchases_date_idx ON purchases (date)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id           TEXT PRIMARY KEY,
		product_id   TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity     TEXT NOT NULL,
		unit_price   TEXT NOT NULL,
		total        TEXT NOT NULL,
		unit_cost    TEXT NOT NULL,
		total_cost   TEXT NOT NULL,
		profit       TEXT NOT NULL,
		margin       TEXT NOT NULL,
		customer     TEXT NOT NULL DEFAULT '',
		date         INTEGER NOT NULL,
		user_id      TEXT NOT NULL DEFAULT '',
		created_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sales_date_idx ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		business      TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL,
		currency      TEXT NOT NULL DEFAULT 'MXN',
		notifications INTEGER NOT NULL DEFAULT 1,
		created_at    INTEGER NOT NULL,
		updated_at    INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
}

// addedColumns columnas agregadas después de la primera versión del esquema.
var addedColumns = []struct{ table, name, def string }{
	{"products", "sold_qty", "TEXT NOT NULL DEFAULT '0'"},
}

func addColumnIfMissing(ctx context.Context, tx *sql.Tx, table, column, def string) error {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `ALTER TABLE `+table+` ADD COLUMN `+column+` `+def); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// EnsureSchema crea las tablas dentro de una transacción.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	for _, c := range addedColumns {
		if err := addColumnIfMissing(ctx, tx, c.table, c.name, c.def); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Las fechas se guardan como nanosegundos Unix en UTC para poder filtrarlas por rango.
func toUnix(t time.Time) int64 { return t.UTC().UnixNano() }

func fromUnix(n int64) time.Time { return time.Unix(0, n).UTC() }

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
