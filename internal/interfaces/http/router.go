package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/procurement-core/internal/application/analytics"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/application/suggestion"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RequisitionUC *requisition.UseCase
	SuggestionUC  *suggestion.UseCase
	AnalyticsUC   *analytics.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Toda la API requiere Bearer Token del
// proveedor de identidad; no hay rutas públicas de negocio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Requisiciones de compra (ciclo de vida)
	requisitions := api.Group("/requisitions")
	requisitionHandler := NewRequisitionHandler(deps.RequisitionUC)
	requisitions.Post("/", requisitionHandler.Create)
	requisitions.Get("/", requisitionHandler.List)
	requisitions.Get("/:id", requisitionHandler.Get)
	requisitions.Post("/:id/submit", requisitionHandler.Submit)
	requisitions.Post("/:id/approve", requisitionHandler.Approve)
	requisitions.Post("/:id/reject", requisitionHandler.Reject)
	requisitions.Post("/:id/convert", requisitionHandler.Convert)
	requisitions.Delete("/:id", requisitionHandler.Delete)

	// Sugerencias de reposición
	suggestions := api.Group("/suggestions")
	suggestionHandler := NewSuggestionHandler(deps.SuggestionUC)
	suggestions.Get("/", suggestionHandler.List)
	suggestions.Post("/requisition", suggestionHandler.CreateRequisition)

	// Analítica (solo lectura)
	analyticsGroup := api.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/abc", analyticsHandler.ABC)
	analyticsGroup.Get("/ageing", analyticsHandler.Ageing)
	analyticsGroup.Get("/turnover", analyticsHandler.Turnover)
	analyticsGroup.Get("/stock-value", analyticsHandler.StockValue)
	analyticsGroup.Get("/suppliers", analyticsHandler.Suppliers)
	analyticsGroup.Get("/fulfillment", analyticsHandler.Fulfillment)
}
