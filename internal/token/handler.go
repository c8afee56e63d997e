package token

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/validate"
)

// Handler exposes token HTTP endpoints. Obtaining a token is the login
// operation, so none of these routes require prior authentication.
type Handler struct {
	service *Service
}

// NewHandler builds a token HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type issueRequest struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// Create issues a token for valid credentials.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req issueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.MissingFields("missing required fields")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	tok, err := h.service.Issue(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(tok)
}

// Get looks a token up by ?id=.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return apperror.MissingFields("missing required field: id")
	}

	tok, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(tok)
}

type extendRequest struct {
	ID     string `json:"id" validate:"required,len=20"`
	Extend bool   `json:"extend" validate:"required,eq=true"`
}

// Update extends a live token's expiry by one TTL.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req extendRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.MissingFields("missing required fields")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	tok, err := h.service.Extend(c.UserContext(), req.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(tok)
}

// Delete removes a token by ?id=, logging the session out.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return apperror.MissingFields("missing required field: id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{})
}
