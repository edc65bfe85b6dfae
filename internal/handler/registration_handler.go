package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manibhaskar29/college-event-management-system/internal/auth"
	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
	"github.com/manibhaskar29/college-event-management-system/internal/service"
)

// RegistrationHandler handles student registration endpoints.
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// RegisterEventRequest is the body of an event registration.
type RegisterEventRequest struct {
	EventID uint `json:"event_id" validate:"required"`
}

// RegistrationListResponse wraps the caller's registrations.
type RegistrationListResponse struct {
	Registrations []model.RegisteredEvent `json:"registrations"`
}

// Register godoc
// @Summary Register the caller for an event
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterEventRequest true "Event to join"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	var req RegisterEventRequest
	if err := bindAndValidate(c, &req, "Event ID is required"); err != nil {
		return respondError(c, err)
	}

	if _, err := h.registrationService.Register(c.Request().Context(), req.EventID, claims.UserID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, MessageResponse{Message: "Successfully registered for event"})
}

// MyRegistrations godoc
// @Summary List the caller's registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RegistrationListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/my-registrations [get]
func (h *RegistrationHandler) MyRegistrations(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	registrations, err := h.registrationService.MyRegistrations(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, RegistrationListResponse{Registrations: registrations})
}

// Pass godoc
// @Summary QR check-in pass for a registration
// @Tags registrations
// @Produce png
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {file} binary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id}/pass [get]
func (h *RegistrationHandler) Pass(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	eventID, err := eventIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	png, err := h.registrationService.Pass(c.Request().Context(), eventID, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
