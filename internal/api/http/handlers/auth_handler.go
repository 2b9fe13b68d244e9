package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/diabetes-care-service/internal/api/dto"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	"github.com/spec-kit/diabetes-care-service/internal/service"
	apperrors "github.com/spec-kit/diabetes-care-service/pkg/util"
)

// AuthHandler exposes login and clinician registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return apperrors.NewValidationError("role must be endocrinologist or patient", nil)
	}

	token, _, err := h.auth.Login(c.UserContext(), req.Username, req.Password, role)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{Token: token, Role: string(role)})
}

// RegisterEndocrinologist handles POST /api/register-endocrinologist.
func (h *AuthHandler) RegisterEndocrinologist(c *fiber.Ctx) error {
	var req dto.RegisterEndocrinologistRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.FullName == "" {
		return apperrors.NewValidationError("username, password, full_name required", nil)
	}

	endo, err := h.auth.RegisterEndocrinologist(c.UserContext(), req.Username, req.Password, req.FullName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":        endo.ID,
			"username":  endo.Username,
			"full_name": endo.FullName,
		},
	})
}
