package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pon-gitweb/tallyup-sub002/internal/application/auth"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/reports"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/stock"
	"github.com/pon-gitweb/tallyup-sub002/internal/application/usecase"
	"github.com/pon-gitweb/tallyup-sub002/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	VarianceUC  *stock.VarianceUseCase
	SuggestUC   *stock.SuggestUseCase
	ReconcileUC *stock.ReconcileUseCase
	ReportUC    *reports.ReportUseCase
	AIUC        *usecase.AIUseCase
	Parser      invoiceParser
	Modules     moduleChecker
	JWTSecret   string

	// SuggestDefaults valores de despliegue para el cálculo de sugeridos.
	SuggestDefaults stock.SuggestOptions
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock: varianza y reporte PDF (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.VarianceUC, deps.SuggestUC, deps.ReportUC, deps.SuggestDefaults)
	stockGroup.Get("/variance", stockHandler.Variance)
	stockGroup.Get("/variance/pdf", RequireRole(entity.RoleAdmin, entity.RoleGerente), stockHandler.VariancePDF)

	// Orders: sugeridos y conciliación (protegido)
	orders := protected.Group("/orders")
	ordersHandler := NewOrdersHandler(deps.ReconcileUC, deps.Parser)
	orders.Get("/suggested", RequireRole(entity.RoleAdmin, entity.RoleGerente), stockHandler.SuggestedOrders)
	orders.Post("/:id/reconcile", ordersHandler.Reconcile)
	orders.Post("/:id/reconcile/einvoice",
		RequireModule(entity.ModuleEInvoice, deps.Modules),
		ordersHandler.ReconcileEInvoice)

	// AI: explicación de varianza (protegido, módulo SaaS)
	ai := protected.Group("/ai", RequireModule(entity.ModuleVarianceAI, deps.Modules))
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/explain-variance", aiHandler.ExplainVariance)
}
