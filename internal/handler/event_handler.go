package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manibhaskar29/college-event-management-system/internal/auth"
	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
	"github.com/manibhaskar29/college-event-management-system/internal/service"
)

// EventHandler handles event management endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest is the body of create and update.
type EventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" validate:"required"`
}

func (r EventRequest) input() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		EventDate:   r.EventDate,
	}
}

// CreateEventResponse is returned after an event is created.
type CreateEventResponse struct {
	Message string `json:"message"`
	EventID uint   `json:"eventId"`
}

// EventListResponse wraps the event listing.
type EventListResponse struct {
	Events []model.EventView `json:"events"`
}

const titleAndDateRequired = "Title and date are required"

// List godoc
// @Summary List all events
// @Description Admins receive registration counts, students receive their registration flag.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} EventListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	events, err := h.eventService.List(c.Request().Context(), claims.Role, claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, EventListResponse{Events: events})
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventRequest true "Event data"
// @Success 201 {object} CreateEventResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return respondError(c, apperrors.ErrInvalidToken)
	}

	var req EventRequest
	if err := bindAndValidate(c, &req, titleAndDateRequired); err != nil {
		return respondError(c, err)
	}

	event, err := h.eventService.Create(c.Request().Context(), req.input(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateEventResponse{
		Message: "Event created successfully",
		EventID: event.ID,
	})
}

// Update godoc
// @Summary Update an event
// @Description Overwrites title, description and date.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body EventRequest true "Event data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req EventRequest
	if err := bindAndValidate(c, &req, titleAndDateRequired); err != nil {
		return respondError(c, err)
	}

	id, err := eventIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.eventService.Update(c.Request().Context(), id, req.input()); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event updated successfully"})
}

// Delete godoc
// @Summary Delete an event and its registrations
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.eventService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// Stats godoc
// @Summary System wide totals
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/stats [get]
func (h *EventHandler) Stats(c echo.Context) error {
	stats, err := h.eventService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
