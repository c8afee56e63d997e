package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsecheck/pulsecheck/internal/user"
)

// RegisterUserRoutes wires the /users resource.
func RegisterUserRoutes(app *fiber.App, h *user.Handler) {
	app.Post("/users", h.Create)
	app.Get("/users", h.Get)
	app.Put("/users", h.Update)
	app.Delete("/users", h.Delete)
	registerMethodNotAllowed(app, "/users",
		fiber.MethodPost, fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete)
}
