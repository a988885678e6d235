package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/domain/finance"
)

// defaultPercentDecimals decimales del porcentaje en /api/calc/format si no se indican.
const defaultPercentDecimals = 1

// CalcHandler expone las fórmulas de negocio sin estado (público).
type CalcHandler struct{}

// NewCalcHandler construye el handler.
func NewCalcHandler() *CalcHandler { return &CalcHandler{} }

// WeightedAverage godoc
// @Summary      Costo promedio ponderado
// @Tags         calc
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WeightedAverageRequest  true  "Compras (cantidad, precio unitario)"
// @Success      200   {object}  dto.ValueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calc/weighted-average [post]
func (h *CalcHandler) WeightedAverage(c *fiber.Ctx) error {
	var in dto.WeightedAverageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	lines := make([]finance.PurchaseLine, 0, len(in.Purchases))
	for _, p := range in.Purchases {
		lines = append(lines, finance.PurchaseLine{Quantity: p.Quantity, UnitPrice: p.UnitPrice})
	}
	return c.JSON(dto.ValueResponse{Value: finance.WeightedAverageCost(lines)})
}

// Margin godoc
// @Summary      Margen porcentual sobre el precio de venta
// @Tags         calc
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarginRequest  true  "Precio de venta y de compra"
// @Success      200   {object}  dto.ValueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calc/margin [post]
func (h *CalcHandler) Margin(c *fiber.Ctx) error {
	var in dto.MarginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(dto.ValueResponse{Value: finance.Margin(in.SalePrice, in.PurchasePrice)})
}

// SaleProfit godoc
// @Summary      Ganancia de una venta
// @Tags         calc
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleProfitRequest  true  "Cantidad, precio de venta y de compra"
// @Success      200   {object}  dto.SaleProfitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calc/sale-profit [post]
func (h *CalcHandler) SaleProfit(c *fiber.Ctx) error {
	var in dto.SaleProfitRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	r := finance.SaleProfit(in.Quantity, in.SalePrice, in.PurchasePrice)
	return c.JSON(dto.SaleProfitResponse{Total: r.Total, Cost: r.Cost, Profit: r.Profit, Margin: r.Margin})
}

// ROI godoc
// @Summary      Retorno sobre la inversión
// @Tags         calc
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ROIRequest  true  "Ganancia e inversión"
// @Success      200   {object}  dto.ValueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calc/roi [post]
func (h *CalcHandler) ROI(c *fiber.Ctx) error {
	var in dto.ROIRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(dto.ValueResponse{Value: finance.ROI(in.Profit, in.Investment)})
}

// Turnover godoc
// @Summary      Días de rotación de inventario
// @Tags         calc
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TurnoverRequest  true  "Días, cantidad vendida y comprada"
// @Success      200   {object}  dto.ValueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calc/turnover [post]
func (h *CalcHandler) Turnover(c *fiber.Ctx) error {
	var in dto.TurnoverRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return c.JSON(dto.ValueResponse{Value: finance.TurnoverDays(in.DaysInStock, in.QuantitySold, in.QuantityPurchased)})
}

// Format godoc
// @Summary      Formatear moneda y porcentaje
// @Tags         calc
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FormatRequest  true  "Valor, moneda ISO y decimales del porcentaje"
// @Success      200   {object}  dto.FormatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calc/format [post]
func (h *CalcHandler) Format(c *fiber.Ctx) error {
	var in dto.FormatRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	decimals := defaultPercentDecimals
	if in.Decimals != nil {
		decimals = *in.Decimals
	}
	if decimals < 0 || decimals > finance.MaxPercentDecimals {
		return badRequest(c, "VALIDATION", fmt.Sprintf("decimals debe estar entre 0 y %d", finance.MaxPercentDecimals))
	}
	return c.JSON(dto.FormatResponse{
		Currency:   finance.FormatCurrency(in.Value, in.Currency),
		Percentage: finance.FormatPercentage(in.Value, decimals),
	})
}
