package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-support/internal/api/http/handlers"
	"github.com/spec-kit/telecom-support/internal/auth"
	"github.com/spec-kit/telecom-support/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	StaffTickets   *handlers.StaffTicketsHandler
	Directory      *handlers.DirectoryHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Public surface: submit and track without an account.
	app.Post("/tickets", cfg.Tickets.CreateTicket)
	app.Get("/tickets/:code", cfg.Tickets.CheckStatus)

	app.Post("/auth/staff/login", cfg.Staff.Login)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())
	admin.Get("/tickets", cfg.StaffTickets.ListTickets)
	admin.Patch("/tickets/:id/status", cfg.StaffTickets.UpdateStatus)
	admin.Post("/tickets/:id/resolve", cfg.StaffTickets.Resolve)
	admin.Post("/tickets/:id/assign", cfg.StaffTickets.Assign)
	admin.Post("/tickets/:id/assign/advised", cfg.StaffTickets.AssignAdvised)

	admin.Get("/clients", cfg.Directory.ListClients)
	admin.Get("/clients/:id", cfg.Directory.GetClient)
	admin.Get("/clients/:id/subscriptions", cfg.Directory.ListSubscriptions)
	admin.Get("/clients/:id/estimate", cfg.Directory.Estimate)
	admin.Get("/services", cfg.Directory.ListServices)
	admin.Get("/engineers", cfg.Directory.ListEngineers)
	admin.Get("/engineers/loads", cfg.Directory.EngineerLoads)

	// Mutating directory operations require the admin role.
	adminOnly := admin.Group("", auth.RequireStaffRole(domain.StaffRoleAdmin))
	adminOnly.Post("/clients", cfg.Directory.CreateClient)
	adminOnly.Post("/clients/:id/subscriptions", cfg.Directory.Subscribe)
	adminOnly.Delete("/subscriptions/:id", cfg.Directory.Unsubscribe)
	adminOnly.Post("/services", cfg.Directory.CreateService)
	adminOnly.Post("/engineers", cfg.Directory.CreateEngineer)
	adminOnly.Patch("/engineers/:id/active", cfg.Directory.SetEngineerActive)
}
