package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manibhaskar29/college-event-management-system/internal/model"
)

// RegistrationRepository defines registration persistence operations.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *model.Registration) error
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Registration, error)
	EventIDsByUser(ctx context.Context, userID uint) ([]uint, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Registration, error)
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create inserts the registration. The (user_id, event_id) unique index turns a
// concurrent duplicate into ErrDuplicateKey.
func (r *registrationRepository) Create(ctx context.Context, registration *model.Registration) error {
	return translateCreateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(registration).Error)
}

func (r *registrationRepository) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *registrationRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Registration, error) {
	var registration model.Registration
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *registrationRepository) EventIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("user_id = ?", userID).
		Pluck("event_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListByUser returns the user's registrations with event and creator loaded,
// most recent registration first.
func (r *registrationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Registration, error) {
	var registrations []model.Registration
	if err := r.db.WithContext(ctx).
		Preload("Event.Creator").
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Order("id DESC").
		Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}
