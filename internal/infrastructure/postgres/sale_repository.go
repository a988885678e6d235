package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, product_name, quantity, unit_price, total, unit_cost, total_cost, profit, margin, customer, date, user_id, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta con su desglose de ganancia.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.ProductName, s.Quantity, s.UnitPrice, s.Total, s.UnitCost, s.TotalCost,
		s.Profit, s.Margin, s.Customer, s.Date, s.UserID, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List ventas del filtro, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.TradeFilter) ([]*entity.Sale, error) {
	tail, args := tradeWhere(f)
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Total,
			&s.UnitCost, &s.TotalCost, &s.Profit, &s.Margin, &s.Customer, &s.Date, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
