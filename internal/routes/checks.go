package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsecheck/pulsecheck/internal/check"
)

// RegisterCheckRoutes wires the /checks resource. Checks have no update or
// delete path yet; those methods answer 405.
func RegisterCheckRoutes(app *fiber.App, h *check.Handler) {
	app.Post("/checks", h.Create)
	app.Get("/checks", h.Get)
	registerMethodNotAllowed(app, "/checks", fiber.MethodPost, fiber.MethodGet)
}
