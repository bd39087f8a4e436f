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
	"github.com/shopspring/decimal"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/auth"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/ports"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/reports"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/stock"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/usecase"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/engine"
	infraai "github.com/pon-gitweb/tallyup-sub002/internal/infrastructure/ai"
	"github.com/pon-gitweb/tallyup-sub002/internal/infrastructure/einvoice"
	infrapdf "github.com/pon-gitweb/tallyup-sub002/internal/infrastructure/pdf"
	"github.com/pon-gitweb/tallyup-sub002/internal/infrastructure/postgres"
	httpRouter "github.com/pon-gitweb/tallyup-sub002/internal/interfaces/http"
	"github.com/pon-gitweb/tallyup-sub002/pkg/config"
	"github.com/pon-gitweb/tallyup-sub002/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Tolerancia de precio del conciliador, ajustable por despliegue.
	if cfg.Engine.PriceTolerancePct >= 0 {
		engine.DefaultPriceTolerancePct = decimal.NewFromFloat(cfg.Engine.PriceTolerancePct)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	venueRepo := postgres.NewVenueRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	countRepo := postgres.NewStockCountRepository(pool)

	varianceUC := stock.NewVarianceUseCase(countRepo)
	suggestUC := stock.NewSuggestUseCase(productRepo, supplierRepo, countRepo, venueRepo)
	reconcileUC := stock.NewReconcileUseCase(orderRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewReportUseCase(varianceUC, venueRepo, pdfGenerator)

	var llm ports.LLMService
	if cfg.AI.Provider == "gemini" {
		llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	} else {
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}
	aiUC := usecase.NewAIUseCase(llm, varianceUC)

	authUC := auth.NewAuthUseCase(userRepo, venueRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	suggestDefaults := stock.SuggestOptions{RoundToPack: cfg.Engine.RoundToPack}
	if cfg.Engine.DefaultPar > 0 {
		par := decimal.NewFromFloat(cfg.Engine.DefaultPar)
		suggestDefaults.DefaultPar = &par
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TallyUp API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		VarianceUC:      varianceUC,
		SuggestUC:       suggestUC,
		ReconcileUC:     reconcileUC,
		ReportUC:        reportUC,
		AIUC:            aiUC,
		Parser:          einvoice.NewUBLParser(),
		Modules:         venueRepo,
		JWTSecret:       cfg.JWT.Secret,
		SuggestDefaults: suggestDefaults,
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

	log.Info().Msg("aplicación detenida")
}
