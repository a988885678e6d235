package postgres

import (
	"context"
	"fmt"
)

// schema DDL idempotente; NUMERIC se mapea a decimal.Decimal vía pgx-shopspring-decimal.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id             VARCHAR(64) PRIMARY KEY,
		name           VARCHAR(120) NOT NULL,
		category       VARCHAR(80)  NOT NULL DEFAULT '',
		unit           VARCHAR(10)  NOT NULL DEFAULT 'kg',
		avg_cost       NUMERIC(14,4) NOT NULL DEFAULT 0,
		avg_sale_price NUMERIC(14,4) NOT NULL DEFAULT 0,
		sold_qty       NUMERIC(16,3) NOT NULL DEFAULT 0,
		stock          NUMERIC(14,3) NOT NULL DEFAULT 0,
		active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE products ADD COLUMN IF NOT EXISTS sold_qty NUMERIC(16,3) NOT NULL DEFAULT 0`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_name_lower_idx ON products (lower(name))`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id           VARCHAR(64) PRIMARY KEY,
		product_id   VARCHAR(64) NOT NULL,
		product_name VARCHAR(120) NOT NULL,
		quantity     NUMERIC(14,3) NOT NULL,
		unit_price   NUMERIC(14,4) NOT NULL,
		total        NUMERIC(16,4) NOT NULL,
		supplier     VARCHAR(120) NOT NULL,
		date         TIMESTAMPTZ NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		user_id      VARCHAR(64) NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS purchases_date_idx ON purchases (date)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id           VARCHAR(64) PRIMARY KEY,
		product_id   VARCHAR(64) NOT NULL,
		product_name VARCHAR(120) NOT NULL,
		quantity     NUMERIC(14,3) NOT NULL,
		unit_price   NUMERIC(14,4) NOT NULL,
		total        NUMERIC(16,4) NOT NULL,
		unit_cost    NUMERIC(14,4) NOT NULL,
		total_cost   NUMERIC(16,4) NOT NULL,
		profit       NUMERIC(16,4) NOT NULL,
		margin       NUMERIC(10,4) NOT NULL,
		customer     VARCHAR(120) NOT NULL DEFAULT '',
		date         TIMESTAMPTZ NOT NULL,
		user_id      VARCHAR(64) NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sales_date_idx ON sales (date)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(64) PRIMARY KEY,
		username      VARCHAR(60)  NOT NULL,
		email         VARCHAR(160) NOT NULL,
		password_hash TEXT NOT NULL,
		name          VARCHAR(120) NOT NULL,
		business      VARCHAR(120) NOT NULL DEFAULT '',
		role          VARCHAR(20)  NOT NULL,
		currency      CHAR(3) NOT NULL DEFAULT 'MXN',
		notifications BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
