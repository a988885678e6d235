package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
)

const (
	purchaseColumns = `id, product_id, product_name, quantity, unit_price, total, supplier, date, notes, user_id, created_at`
	saleColumns     = `id, product_id, product_name, quantity, unit_price, total, unit_cost, total_cost, profit, margin, customer, date, user_id, created_at`
)

// tradeWhere arma WHERE/ORDER/LIMIT para compras y ventas.
func tradeWhere(f repository.TradeFilter) (string, []any) {
	var conds []string
	var args []any
	if !f.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, toUnix(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "date < ?")
		args = append(args, toUnix(f.To))
	}
	if f.ProductID != "" {
		conds = append(conds, "product_id = ?")
		args = append(args, f.ProductID)
	}
	var b strings.Builder
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY date DESC, created_at DESC")
	if f.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}
	return b.String(), args
}

// PurchaseRepo compras sobre SQLite.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ProductID, p.ProductName, p.Quantity, p.UnitPrice, p.Total, p.Supplier,
		toUnix(p.Date), p.Notes, p.UserID, toUnix(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// List compras del filtro, más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context, f repository.TradeFilter) ([]*entity.Purchase, error) {
	tail, args := tradeWhere(f)
	rows, err := r.q.QueryContext(ctx, `SELECT `+purchaseColumns+` FROM purchases`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		var date, created int64
		if err := rows.Scan(&p.ID, &p.ProductID, &p.ProductName, &p.Quantity, &p.UnitPrice, &p.Total,
			&p.Supplier, &date, &p.Notes, &p.UserID, &created); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.Date, p.CreatedAt = fromUnix(date), fromUnix(created)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SaleRepo ventas sobre SQLite.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ProductID, s.ProductName, s.Quantity, s.UnitPrice, s.Total, s.UnitCost, s.TotalCost,
		s.Profit, s.Margin, s.Customer, toUnix(s.Date), s.UserID, toUnix(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// List ventas del filtro, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.TradeFilter) ([]*entity.Sale, error) {
	tail, args := tradeWhere(f)
	rows, err := r.q.QueryContext(ctx, `SELECT `+saleColumns+` FROM sales`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var date, created int64
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.Total,
			&s.UnitCost, &s.TotalCost, &s.Profit, &s.Margin, &s.Customer, &date, &s.UserID, &created); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.Date, s.CreatedAt = fromUnix(date), fromUnix(created)
		list = append(list, &s)
	}
	return list, rows.Err()
}
