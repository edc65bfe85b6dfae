package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manibhaskar29/college-event-management-system/internal/auth"
	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
	"github.com/manibhaskar29/college-event-management-system/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin student"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Identity describes the authenticated caller.
type Identity struct {
	UserID uint       `json:"userId"`
	Role   model.Role `json:"role"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
}

// ProtectedResponse is returned by the token check endpoint.
type ProtectedResponse struct {
	Message string   `json:"message"`
	User    Identity `json:"user"`
}

const allFieldsRequired = "All fields are required"

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req, allFieldsRequired); err != nil {
		return respondError(c, err)
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password, model.Role(req.Role)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req, allFieldsRequired); err != nil {
		return respondError(c, err)
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// Protected godoc
// @Summary Check the bearer token and return the caller
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProtectedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/protected [get]
func (h *AuthHandler) Protected(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	user, err := h.authService.Identity(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProtectedResponse{
		Message: "You accessed a protected route",
		User: Identity{
			UserID: user.ID,
			Role:   claims.Role,
			Name:   user.Name,
			Email:  user.Email,
		},
	})
}
