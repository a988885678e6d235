package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/verduras-pro/internal/application/analytics"
	"github.com/jhoicas/verduras-pro/internal/application/auth"
	"github.com/jhoicas/verduras-pro/internal/application/dto"
	"github.com/jhoicas/verduras-pro/internal/application/report"
	"github.com/jhoicas/verduras-pro/internal/application/trade"
	"github.com/jhoicas/verduras-pro/internal/application/usecase"
	"github.com/jhoicas/verduras-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	UserUC           *usecase.UserUseCase
	RegisterPurchase *trade.RegisterPurchaseUseCase
	RegisterSale     *trade.RegisterSaleUseCase
	HistoryUC        *analytics.HistoryUseCase
	DashboardUC      *analytics.DashboardUseCase
	AnalysisUC       *analytics.ProductAnalysisUseCase
	ReportUC         *report.ReportUseCase
	JWTSecret        string
	AppName          string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Especificación OpenAPI registrada por el paquete docs.
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documentación no disponible"})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Calculadora (público)
	calc := api.Group("/calc")
	calcHandler := NewCalcHandler()
	calc.Post("/weighted-average", calcHandler.WeightedAverage)
	calc.Post("/margin", calcHandler.Margin)
	calc.Post("/sale-profit", calcHandler.SaleProfit)
	calc.Post("/roi", calcHandler.ROI)
	calc.Post("/turnover", calcHandler.Turnover)
	calc.Post("/format", calcHandler.Format)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/seed", adminOnly, productHandler.Seed)
	products.Delete("/", adminOnly, productHandler.Reset)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Compras, ventas e historial
	tradeHandler := NewTradeHandler(deps.RegisterPurchase, deps.RegisterSale, deps.HistoryUC)
	protected.Post("/purchases", tradeHandler.RegisterPurchase)
	protected.Get("/purchases", tradeHandler.ListPurchases)
	protected.Post("/sales", tradeHandler.RegisterSale)
	protected.Get("/sales", tradeHandler.ListSales)
	protected.Get("/history", tradeHandler.History)

	// Dashboard, análisis y reportes
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.AnalysisUC, deps.ReportUC)
	protected.Get("/history/report.pdf", analyticsHandler.HistoryReport)
	protected.Get("/dashboard/summary", analyticsHandler.GetSummary)
	protected.Get("/analytics/products", analyticsHandler.ProductAnalysis)

	// Preferencias
	settingsHandler := NewSettingsHandler(deps.UserUC)
	protected.Get("/me/settings", settingsHandler.Get)
	protected.Put("/me/settings", settingsHandler.Update)
}
