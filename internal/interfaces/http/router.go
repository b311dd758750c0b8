package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gcharles/autoshop-inventory/internal/application/auth"
	"github.com/gcharles/autoshop-inventory/internal/application/inventory"
	"github.com/gcharles/autoshop-inventory/internal/application/reporting"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	InventoryUC *inventory.UseCase
	ReportingUC *reporting.UseCase
	ItemRepo    repository.ItemRepository
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mutaciones de inventario y lookup (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ItemRepo, deps.Log)
	invGroup.Post("/receive", inventoryHandler.Receive)
	invGroup.Post("/issue", inventoryHandler.Issue)
	invGroup.Get("/:sku", inventoryHandler.Lookup)

	// Dashboards (protegido + RBAC por dashboard)
	dashboards := protected.Group("/dashboards")
	dashboardHandler := NewDashboardHandler(deps.ReportingUC, deps.Log)
	dashboards.Get("/", dashboardHandler.ListDashboards)
	dashboards.Get("/:id", RequireDashboard(deps.Log), dashboardHandler.GetDashboard)
}
