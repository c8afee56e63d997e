package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsecheck/pulsecheck/internal/token"
)

// RegisterTokenRoutes wires the /tokens resource. Issuance goes through the
// rate limiter; the other operations take the opaque id directly.
func RegisterTokenRoutes(app *fiber.App, h *token.Handler, rateLimiter fiber.Handler) {
	app.Post("/tokens", rateLimiter, h.Create)
	app.Get("/tokens", h.Get)
	app.Put("/tokens", h.Update)
	app.Delete("/tokens", h.Delete)
	registerMethodNotAllowed(app, "/tokens",
		fiber.MethodPost, fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete)
}
