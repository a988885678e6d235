package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/verduras-pro/docs"
	"github.com/jhoicas/verduras-pro/internal/application/analytics"
	"github.com/jhoicas/verduras-pro/internal/application/auth"
	"github.com/jhoicas/verduras-pro/internal/application/report"
	"github.com/jhoicas/verduras-pro/internal/application/trade"
	"github.com/jhoicas/verduras-pro/internal/application/usecase"
	infrapdf "github.com/jhoicas/verduras-pro/internal/infrastructure/pdf"
	"github.com/jhoicas/verduras-pro/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/verduras-pro/internal/interfaces/http"
	"github.com/jhoicas/verduras-pro/internal/scheduler"
	"github.com/jhoicas/verduras-pro/pkg/config"
	"github.com/jhoicas/verduras-pro/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	userUC := usecase.NewUserUseCase(store.Users, cfg.Business.Currency)
	productUC := usecase.NewProductUseCase(store.Products, log)
	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Business.Currency, log)

	// La moneda de cada respuesta sale de las preferencias del usuario.
	registerPurchaseUC := trade.NewRegisterPurchaseUseCase(store.Tx, userUC, log)
	registerSaleUC := trade.NewRegisterSaleUseCase(store.Tx, userUC, log)

	historyUC := analytics.NewHistoryUseCase(store.Purchases, store.Sales, userUC)
	dashboardUC := analytics.NewDashboardUseCase(store.Products, store.Purchases, store.Sales, userUC)
	analysisUC := analytics.NewProductAnalysisUseCase(store.Products, store.Purchases, store.Sales)
	reportUC := report.NewReportUseCase(historyUC, infrapdf.NewMarotoPDFGenerator(), userUC, cfg.Business.Name, log)

	// Cierre diario: resumen del día en el log.
	jobs := scheduler.New(dashboardUC, cfg.Scheduler.DailyClose, log)
	if err := jobs.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Verduras Pro API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		UserUC:           userUC,
		RegisterPurchase: registerPurchaseUC,
		RegisterSale:     registerSaleUC,
		HistoryUC:        historyUC,
		DashboardUC:      dashboardUC,
		AnalysisUC:       analysisUC,
		ReportUC:         reportUC,
		JWTSecret:        cfg.JWT.Secret,
		AppName:          cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	jobs.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
