package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/api/dto"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/service"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// AuthHandler serves registration, login and identity endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a customer account.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	user, err := h.authService.Signup(c.Context(), service.SignupInput{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Login issues an access token. The request body is OAuth2 password-grant
// form fields (username, password).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	token, expiresAt, _, err := h.authService.Login(c.Context(), email, password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.NewUserResponse(user))
}
