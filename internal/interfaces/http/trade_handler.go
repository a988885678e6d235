package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/verduras-pro/internal/application/analytics"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/trade"
)

// TradeHandler registra y lista compras y ventas.
type TradeHandler struct {
	purchase *trade.RegisterPurchaseUseCase
	sale     *trade.RegisterSaleUseCase
	history  *analytics.HistoryUseCase
}

// NewTradeHandler construye el handler.
func NewTradeHandler(purchase *trade.RegisterPurchaseUseCase, sale *trade.RegisterSaleUseCase, history *analytics.HistoryUseCase) *TradeHandler {
	return &TradeHandler{purchase: purchase, sale: sale, history: history}
}

// RegisterPurchase godoc
// @Summary      Registrar compra
// @Description  Suma stock y recalcula el costo promedio ponderado del producto.
// @Tags         trade
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *TradeHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.purchase.Execute(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterSale godoc
// @Summary      Registrar venta
// @Description  Calcula la ganancia contra el costo promedio y descuenta stock.
// @Tags         trade
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *TradeHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.sale.Execute(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         trade
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Límite"
// @Success      200         {object}  dto.HistoryResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *TradeHandler) ListPurchases(c *fiber.Ctx) error {
	return h.list(c, analytics.KindPurchase)
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         trade
// @Security     Bearer
// @Produce      json
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Límite"
// @Success      200         {object}  dto.HistoryResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *TradeHandler) ListSales(c *fiber.Ctx) error {
	return h.list(c, analytics.KindSale)
}

// History godoc
// @Summary      Historial de compras y ventas
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "compra | venta"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        product_id  query  string  false  "Producto"
// @Param        limit       query  int     false  "Límite"
// @Success      200         {object}  dto.HistoryResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *TradeHandler) History(c *fiber.Ctx) error {
	var in dto.TradeListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	out, err := h.history.List(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *TradeHandler) list(c *fiber.Ctx, kind string) error {
	var in dto.TradeListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros inválidos")
	}
	in.Kind = kind
	out, err := h.history.List(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
