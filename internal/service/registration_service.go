package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/metrics"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
	"github.com/manibhaskar29/college-event-management-system/internal/repository"
)

const passSize = 256

// RegistrationService handles student registrations.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID uint) (*model.Registration, error)
	MyRegistrations(ctx context.Context, userID uint) ([]model.RegisteredEvent, error)
	Pass(ctx context.Context, eventID, userID uint) ([]byte, error)
}

type registrationService struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(eventRepo repository.EventRepository, registrationRepo repository.RegistrationRepository) RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

// Register records the user's registration for the event. The unique index on
// (user_id, event_id) is authoritative; the pre-check only avoids a failed insert.
func (s *registrationService) Register(ctx context.Context, eventID, userID uint) (*model.Registration, error) {
	if eventID == 0 {
		return nil, apperrors.NewValidationError("Event ID is required")
	}

	exists, err := s.eventRepo.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrEventNotFound
	}

	registered, err := s.registrationRepo.Exists(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if registered {
		return nil, apperrors.ErrAlreadyRegistered
	}

	registration := &model.Registration{UserID: userID, EventID: eventID}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	metrics.RegistrationsCreated.Inc()

	return registration, nil
}

// MyRegistrations lists the events the user registered for, newest registration first.
func (s *registrationService) MyRegistrations(ctx context.Context, userID uint) ([]model.RegisteredEvent, error) {
	registrations, err := s.registrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch registrations: %w", err)
	}

	result := make([]model.RegisteredEvent, 0, len(registrations))
	for _, r := range registrations {
		result = append(result, model.RegisteredEvent{
			ID:           r.Event.ID,
			Title:        r.Event.Title,
			Description:  r.Event.Description,
			EventDate:    r.Event.EventDate,
			CreatedBy:    r.Event.Creator.Name,
			RegisteredAt: r.RegisteredAt,
		})
	}
	return result, nil
}

// Pass renders a PNG QR code identifying the user's registration for check-in.
func (s *registrationService) Pass(ctx context.Context, eventID, userID uint) ([]byte, error) {
	registration, err := s.registrationRepo.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotRegistered
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}

	png, err := qrcode.Encode(passContent(registration), qrcode.Medium, passSize)
	if err != nil {
		return nil, fmt.Errorf("encode pass: %w", err)
	}
	return png, nil
}

func passContent(r *model.Registration) string {
	return fmt.Sprintf("college-events:registration:%d:event:%d:user:%d", r.ID, r.EventID, r.UserID)
}
