package user

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
	"github.com/pulsecheck/pulsecheck/internal/validate"
)

const tokenHeader = "token"

// Handler exposes user HTTP endpoints. Signup is open; every other
// operation requires a token verified against the target phone.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone"`
	Password     string `json:"password" validate:"required"`
	TOSAgreement bool   `json:"tosAgreement" validate:"required,eq=true"`
}

// Create registers a new user.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.MissingFields("missing required fields")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	u, err := h.service.Create(c.UserContext(), CreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Password:     req.Password,
		TOSAgreement: req.TOSAgreement,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(u)
}

// Get returns the user identified by ?phone=, password digest stripped.
func (h *Handler) Get(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return apperror.MissingFields("missing required field: phone")
	}

	u, err := h.service.Get(c.UserContext(), phone, c.Get(tokenHeader))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(u)
}

type updateRequest struct {
	Phone     string  `json:"phone" validate:"required,phone"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
}

// Update merges profile fields into the stored user.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.MissingFields("missing required fields")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	u, err := h.service.Update(c.UserContext(), req.Phone, c.Get(tokenHeader), UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(u)
}

// Delete removes the user identified by ?phone=.
func (h *Handler) Delete(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return apperror.MissingFields("missing required field: phone")
	}

	if err := h.service.Delete(c.UserContext(), phone, c.Get(tokenHeader)); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{})
}
