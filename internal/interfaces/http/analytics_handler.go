package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/verduras-pro/internal/application/analytics"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/report"
)

// AnalyticsHandler maneja dashboard, análisis por producto y el reporte PDF.
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	analysis  *analytics.ProductAnalysisUseCase
	report    *report.ReportUseCase
	now       func() time.Time
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(dashboard *analytics.DashboardUseCase, analysis *analytics.ProductAnalysisUseCase, rep *report.ReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard, analysis: analysis, report: rep, now: time.Now}
}

// GetSummary devuelve los indicadores del dashboard calculados con la hora del servidor.
// GET /api/dashboard/summary
//
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.UserContext(), GetUserID(c), h.now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ProductAnalysis godoc
// @Summary      Análisis de rentabilidad por producto
// @Description  Margen, ROI, rotación y recomendación de compra de cada producto en el período.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD). Default: hace 30 días."
// @Param        to      query  string  false  "Hasta inclusive (YYYY-MM-DD). Default: hoy."
// @Param        search  query  string  false  "Filtro por nombre"
// @Success      200     {object}  dto.ProductAnalysisResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/analytics/products [get]
func (h *AnalyticsHandler) ProductAnalysis(c *fiber.Ctx) error {
	var req dto.ProductAnalysisRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	out, err := h.analysis.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// HistoryReport godoc
// @Summary      Historial en PDF
// @Tags         history
// @Security     Bearer
// @Produce      application/pdf
// @Param        type        query  string  false  "compra | venta"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Param        product_id  query  string  false  "Producto"
// @Success      200         {file}    file
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/history/report.pdf [get]
func (h *AnalyticsHandler) HistoryReport(c *fiber.Ctx) error {
	var in dto.TradeListRequest
	if err := c.QueryParser(&in); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	pdf, filename, err := h.report.HistoryPDF(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
