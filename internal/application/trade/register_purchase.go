package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
	"github.com/jhoicas/verduras-pro/internal/domain/repository"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

// costScale decimales con que se guarda el costo promedio.
const costScale = 4

// RegisterPurchaseUseCase registra una compra y recalcula costo promedio y stock del producto.
type RegisterPurchaseUseCase struct {
	tx       TxRunner
	currency CurrencyResolver
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(tx TxRunner, currency CurrencyResolver, log *logger.Logger) *RegisterPurchaseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterPurchaseUseCase{tx: tx, currency: currency, log: log.Named("compras"), now: time.Now}
}

// Execute valida la compra y, en una sola transacción, la guarda y actualiza el producto:
//
//	NuevoCosto = ((Stock * Costo) + (Cantidad * Precio)) / (Stock + Cantidad)
func (uc *RegisterPurchaseUseCase) Execute(ctx context.Context, userID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	supplier := strings.TrimSpace(in.Supplier)
	if supplier == "" {
		return nil, fmt.Errorf("%w: el proveedor es requerido", domain.ErrInvalidInput)
	}

	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	var purchase *entity.Purchase
	var product *entity.Product
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, purchases repository.PurchaseRepository, _ repository.SaleRepository) error {
		p, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if !p.Active {
			return domain.ErrInactiveProduct
		}

		stock := decimal.Max(p.Stock, decimal.Zero)
		p.AvgCost = finance.AddToAverageCost(stock, p.AvgCost, in.Quantity, in.UnitPrice).Round(costScale)
		p.Stock = stock.Add(in.Quantity)
		p.UpdatedAt = now
		if err := products.Update(ctx, p); err != nil {
			return err
		}

		purchase = &entity.Purchase{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Total:       in.Quantity.Mul(in.UnitPrice),
			Supplier:    supplier,
			Date:        date,
			Notes:       strings.TrimSpace(in.Notes),
			UserID:      userID,
			CreatedAt:   now,
		}
		product = p
		return purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", product.ID).
		Str("producto", product.Name).
		Str("cantidad", purchase.Quantity.String()).
		Str("total", purchase.Total.StringFixed(2)).
		Str("nuevo_costo", product.AvgCost.String()).
		Msg("compra registrada")

	out := ToPurchaseResponse(purchase, uc.currency.CurrencyFor(ctx, userID))
	out.NewAvgCost = product.AvgCost
	out.NewStock = product.Stock
	return out, nil
}

// ToPurchaseResponse convierte la entidad a DTO con el total formateado.
func ToPurchaseResponse(p *entity.Purchase, currency string) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:             p.ID,
		ProductID:      p.ProductID,
		ProductName:    p.ProductName,
		Quantity:       p.Quantity,
		UnitPrice:      p.UnitPrice,
		Total:          p.Total,
		TotalFormatted: finance.FormatCurrency(p.Total, currency),
		Supplier:       p.Supplier,
		Notes:          p.Notes,
		Date:           p.Date,
	}
}
