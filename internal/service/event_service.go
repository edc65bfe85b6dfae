package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/metrics"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
	"github.com/manibhaskar29/college-event-management-system/internal/repository"
)

// Accepted event_date layouts, tried in order.
var eventDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// EventInput carries the writable fields of an event.
type EventInput struct {
	Title       string
	Description string
	EventDate   string
}

// EventService handles event management.
type EventService interface {
	Create(ctx context.Context, input EventInput, creatorID uint) (*model.Event, error)
	List(ctx context.Context, role model.Role, userID uint) ([]model.EventView, error)
	Stats(ctx context.Context) (*model.Stats, error)
	Update(ctx context.Context, id uint, input EventInput) error
	Delete(ctx context.Context, id uint) error
}

type eventService struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repository.EventRepository, registrationRepo repository.RegistrationRepository) EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

// Create stores a new event owned by creatorID.
func (s *eventService) Create(ctx context.Context, input EventInput, creatorID uint) (*model.Event, error) {
	title, date, err := validateEventInput(input)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       title,
		Description: input.Description,
		EventDate:   date,
		CreatedBy:   creatorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	metrics.EventsCreated.Inc()

	return event, nil
}

// List returns every event with its registration count. Students also see
// whether they are registered.
func (s *eventService) List(ctx context.Context, role model.Role, userID uint) ([]model.EventView, error) {
	events, err := s.eventRepo.ListWithCreator(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	views := make([]model.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, model.EventView{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			EventDate:   e.EventDate,
			CreatedBy:   e.Creator.Name,
		})
	}

	counts, err := s.eventRepo.RegistrationCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	for i := range views {
		n := counts[views[i].ID]
		views[i].Registrations = &n
	}

	if role == model.RoleStudent {
		ids, err := s.registrationRepo.EventIDsByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("fetch user registrations: %w", err)
		}
		registered := make(map[uint]struct{}, len(ids))
		for _, id := range ids {
			registered[id] = struct{}{}
		}
		for i := range views {
			_, ok := registered[views[i].ID]
			views[i].IsRegistered = &ok
		}
	}

	return views, nil
}

// Stats returns system wide totals.
func (s *eventService) Stats(ctx context.Context) (*model.Stats, error) {
	events, registrations, err := s.eventRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}

	average := decimal.Zero
	if events > 0 {
		average = decimal.NewFromInt(registrations).Div(decimal.NewFromInt(events)).Round(2)
	}

	return &model.Stats{
		TotalEvents:          events,
		TotalRegistrations:   registrations,
		AverageRegistrations: average,
	}, nil
}

// Update overwrites title, description and date of an existing event.
func (s *eventService) Update(ctx context.Context, id uint, input EventInput) error {
	title, date, err := validateEventInput(input)
	if err != nil {
		return err
	}

	exists, err := s.eventRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return apperrors.ErrEventNotFound
	}

	event := &model.Event{
		ID:          id,
		Title:       title,
		Description: input.Description,
		EventDate:   date,
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes the event together with its registrations.
func (s *eventService) Delete(ctx context.Context, id uint) error {
	if err := s.eventRepo.DeleteWithRegistrations(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func validateEventInput(input EventInput) (string, time.Time, error) {
	title := strings.TrimSpace(input.Title)
	raw := strings.TrimSpace(input.EventDate)
	if title == "" || raw == "" {
		return "", time.Time{}, apperrors.NewValidationError("Title and date are required")
	}
	date, err := parseEventDate(raw)
	if err != nil {
		return "", time.Time{}, err
	}
	return title, date, nil
}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("Invalid event date, expected YYYY-MM-DD")
}
