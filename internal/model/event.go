package model

import "time"

// Event is a college event created by an admin.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	EventDate   time.Time `json:"event_date" gorm:"not null;index"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator User `json:"-" gorm:"foreignKey:CreatedBy"`
}

// Registration joins a student to an event. The composite unique index is what
// guarantees at most one registration per (user, event) pair.
type Registration struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_registrations_user_event,priority:1"`
	EventID      uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_registrations_user_event,priority:2;index"`
	RegisteredAt time.Time `json:"registered_at" gorm:"autoCreateTime;index"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}
