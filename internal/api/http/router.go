package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noorskin/storefront/internal/api/http/handlers"
	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Manager  *handlers.ManagerHandler
	Staff    *handlers.StaffHandler
	Products *handlers.ProductsHandler
	Content  *handlers.ContentHandler
	Guard    *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	manager := app.Group("/manager")
	manager.Post("/auth/login", cfg.Manager.Login)
	manager.Post("/auth/logout", cfg.Manager.Logout)
	manager.Get("/session", cfg.Manager.Session)

	signedIn := cfg.Guard.Require()
	manager.Get("/me", signedIn, cfg.Manager.Me)
	manager.Patch("/profile", signedIn, cfg.Manager.UpdateProfile)
	manager.Get("/navigation", signedIn, cfg.Manager.Navigation)
	manager.Get("/staff", cfg.Guard.Require(domain.PermissionManageStaff), cfg.Staff.List)
	manager.Get("/roles", cfg.Guard.Require(domain.PermissionSystemSettings), cfg.Staff.Roles)

	canEditCatalog := cfg.Guard.Require(domain.PermissionManageProducts)
	app.Get("/products", cfg.Products.List)
	app.Post("/products", canEditCatalog, cfg.Products.Create)
	app.Get("/products/:id", cfg.Products.Get)
	app.Put("/products/:id", canEditCatalog, cfg.Products.Update)
	app.Delete("/products/:id", canEditCatalog, cfg.Products.Delete)

	app.Get("/content/:model/*", cfg.Content.Get)
}
