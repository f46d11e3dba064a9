package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-stock/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Control       *stock.ControlUseCase
	Availability  *stock.AvailabilityUseCase
	Provision     *stock.ProvisionUseCase
	Replenishment *stock.ReplenishmentUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	handler := NewStockHandler(deps.Control, deps.Availability, deps.Provision, deps.Replenishment)

	stockGroup := protected.Group("/stock")
	stockGroup.Get("/", handler.ListBySupplier)
	stockGroup.Post("/", handler.Provision)
	stockGroup.Post("/reserve", handler.Reserve)
	stockGroup.Post("/release", handler.Release)
	stockGroup.Post("/deduct", handler.Deduct)
	stockGroup.Post("/restock", handler.Restock)
	stockGroup.Get("/replenishment", handler.ReplenishmentList)
	stockGroup.Get("/replenishment/pdf", handler.ReplenishmentPDF)
	stockGroup.Get("/:itemId/availability", handler.CheckAvailability)
	stockGroup.Post("/:itemId/discontinue", handler.Discontinue)
	stockGroup.Post("/:itemId/reactivate", handler.Reactivate)
	stockGroup.Get("/:itemId", handler.Get)
	stockGroup.Put("/:itemId", handler.Adjust)
	stockGroup.Delete("/:itemId", handler.Remove)
}
