package routes

import (
	"github.com/gofiber/fiber/v2"

	"paytrack-backend/controllers"
	"paytrack-backend/database"
	"paytrack-backend/middlewares"
	"paytrack-backend/models"
)

// Register wires all HTTP routes. Reads are open to any authenticated role;
// mutations need staff, user management needs admin. Cascading deletes are
// re-checked inside the handlers (force flag requires admin).
func Register(app *fiber.App, h *controllers.Handler, store *database.Store) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", h.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for mutations (replays stored responses on retries)
	protected.Use(middlewares.Idempotency(store))

	protected.Get("/auth/me", h.Me)

	// Reads
	protected.Get("/clients", h.GetClients)
	protected.Get("/clients/:id", h.GetClient)
	protected.Get("/clients/:id/statement", h.GetClientStatement)
	protected.Get("/clients/:id/statement/export", h.ExportClientStatement)
	protected.Get("/invoices", h.GetInvoices)
	protected.Get("/invoices/:id", h.GetInvoice)
	protected.Get("/payments", h.GetPayments)
	protected.Get("/stats", h.GetStats)

	// Mutations (staff+)
	staff := middlewares.RequireRole(models.RoleStaff)
	protected.Post("/clients", staff, h.CreateClient)
	protected.Delete("/clients/:id", staff, h.DeleteClient)
	protected.Post("/invoices", staff, h.CreateInvoice)
	protected.Post("/invoices/:id/mark-paid", staff, h.MarkInvoicePaid)
	protected.Delete("/invoices/:id", staff, h.DeleteInvoice)
	protected.Post("/payments", staff, h.CreatePayment)
	protected.Delete("/payments/:id", staff, h.DeletePayment)

	// User management (admin+)
	admin := middlewares.RequireRole(models.RoleAdmin)
	protected.Get("/users", admin, h.GetUsers)
	protected.Post("/users", admin, h.CreateUser)
	protected.Put("/users/:id", admin, h.UpdateUserRole)
	protected.Patch("/users/:id/password", admin, h.UpdateUserPassword)
	protected.Delete("/users/:id", admin, h.DeleteUser)
}
