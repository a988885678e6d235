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

// RegisterSaleUseCase registra una venta y calcula la ganancia contra el costo promedio del producto.
type RegisterSaleUseCase struct {
	tx       TxRunner
	currency CurrencyResolver
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterSaleUseCase construye el caso de uso.
func NewRegisterSaleUseCase(tx TxRunner, currency CurrencyResolver, log *logger.Logger) *RegisterSaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterSaleUseCase{tx: tx, currency: currency, log: log.Named("ventas"), now: time.Now}
}

// Execute guarda la venta, descuenta stock (sin bajar de 0) y actualiza el precio de venta promedio.
// La venta no se bloquea por falta de stock: el costo del catálogo puede mantenerse a mano.
func (uc *RegisterSaleUseCase) Execute(ctx context.Context, userID string, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}

	now := uc.now()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	var sale *entity.Sale
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.PurchaseRepository, sales repository.SaleRepository) error {
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

		calc := finance.SaleProfit(in.Quantity, in.UnitPrice, p.AvgCost)
		sale = &entity.Sale{
			ID:          uuid.New().String(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Total:       calc.Total,
			UnitCost:    p.AvgCost,
			TotalCost:   calc.Cost,
			Profit:      calc.Profit,
			Margin:      calc.Margin.Round(costScale),
			Customer:    strings.TrimSpace(in.Customer),
			Date:        date,
			UserID:      userID,
			CreatedAt:   now,
		}

		sold := decimal.Max(p.SoldQty, decimal.Zero)
		p.AvgSalePrice = finance.AddToAverageCost(sold, p.AvgSalePrice, in.Quantity, in.UnitPrice).Round(costScale)
		p.SoldQty = sold.Add(in.Quantity)
		p.Stock = decimal.Max(p.Stock.Sub(in.Quantity), decimal.Zero)
		p.UpdatedAt = now
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		return sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	ev := uc.log.Info()
	if sale.Profit.IsNegative() {
		ev = uc.log.Warn()
	}
	ev.Str("product_id", sale.ProductID).
		Str("producto", sale.ProductName).
		Str("total", sale.Total.StringFixed(2)).
		Str("ganancia", sale.Profit.StringFixed(2)).
		Str("margen", finance.FormatPercentage(sale.Margin, 1)).
		Msg("venta registrada")

	return ToSaleResponse(sale, uc.currency.CurrencyFor(ctx, userID)), nil
}

// ToSaleResponse convierte la entidad a DTO con montos formateados.
func ToSaleResponse(s *entity.Sale, currency string) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:              s.ID,
		ProductID:       s.ProductID,
		ProductName:     s.ProductName,
		Quantity:        s.Quantity,
		UnitPrice:       s.UnitPrice,
		Total:           s.Total,
		UnitCost:        s.UnitCost,
		TotalCost:       s.TotalCost,
		Profit:          s.Profit,
		Margin:          s.Margin,
		IsProfit:        !s.Profit.IsNegative(),
		TotalFormatted:  finance.FormatCurrency(s.Total, currency),
		ProfitFormatted: finance.FormatCurrency(s.Profit, currency),
		MarginFormatted: finance.FormatPercentage(s.Margin, 1),
		Customer:        s.Customer,
		Date:            s.Date,
	}
}
