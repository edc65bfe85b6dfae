package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manibhaskar29/college-event-management-system/internal/model"
)

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, event *model.Event) error
	ListWithCreator(ctx context.Context) ([]model.Event, error)
	RegistrationCounts(ctx context.Context) (map[uint]int64, error)
	DeleteWithRegistrations(ctx context.Context, id uint) error
	Totals(ctx context.Context) (events int64, registrations int64, err error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

// Exists reports whether an event with the given ID is present.
func (r *eventRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update overwrites title, description and date. Zero values are written too.
func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Model(event).
		Select("title", "description", "event_date", "updated_at").
		Updates(event).Error
}

// ListWithCreator lists all events with their creator loaded, latest date first.
func (r *eventRepository) ListWithCreator(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("event_date DESC").
		Order("id DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// RegistrationCounts returns the number of distinct registrants per event.
// Events without registrations are absent from the map.
func (r *eventRepository) RegistrationCounts(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		EventID uint
		Total   int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Select("event_id, COUNT(DISTINCT user_id) AS total").
		Group("event_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Total
	}
	return counts, nil
}

// DeleteWithRegistrations removes the event's registrations and then the event
// in one transaction. A missing event yields gorm.ErrRecordNotFound.
func (r *eventRepository) DeleteWithRegistrations(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.Registration{}).Error; err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Totals counts events and registrations in a single aggregate query.
func (r *eventRepository) Totals(ctx context.Context) (int64, int64, error) {
	var row struct {
		TotalEvents        int64
		TotalRegistrations int64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM events) AS total_events,
			(SELECT COUNT(*) FROM registrations) AS total_registrations
	`).Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.TotalEvents, row.TotalRegistrations, nil
}
