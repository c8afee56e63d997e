package check

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/validate"
)

const tokenHeader = "token"

// Handler exposes check HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a check HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Protocol       string `json:"protocol" validate:"required,oneof=http https"`
	URL            string `json:"url" validate:"required"`
	Method         string `json:"method" validate:"required,oneof=get post put delete"`
	SuccessCodes   []int  `json:"successCodes" validate:"required,min=1,dive,gte=100,lte=599"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"required,gte=1,lte=5"`
}

// Create registers an uptime check for the caller's user, subject to the
// per-user quota.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.MissingFields("missing required fields")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	chk, err := h.service.Create(c.UserContext(), c.Get(tokenHeader), CreateInput{
		Protocol:       req.Protocol,
		URL:            req.URL,
		Method:         req.Method,
		SuccessCodes:   req.SuccessCodes,
		TimeoutSeconds: req.TimeoutSeconds,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(chk)
}

// Get returns the check identified by ?id=, restricted to its owner.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return apperror.MissingFields("missing required field: id")
	}

	chk, err := h.service.Get(c.UserContext(), id, c.Get(tokenHeader))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(chk)
}
