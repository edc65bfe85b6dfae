package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventView is an event as returned by the listing endpoint. IsRegistered is
// only set for student callers.
type EventView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EventDate     time.Time `json:"event_date"`
	CreatedBy     string    `json:"created_by"`
	Registrations *int64    `json:"registrations,omitempty"`
	IsRegistered  *bool     `json:"isRegistered,omitempty"`
}

// RegisteredEvent is one row of a student's registrations.
type RegisteredEvent struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	EventDate    time.Time `json:"event_date"`
	CreatedBy    string    `json:"created_by"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Stats holds system wide totals for the admin dashboard.
type Stats struct {
	TotalEvents          int64           `json:"totalEvents"`
	TotalRegistrations   int64           `json:"totalRegistrations"`
	AverageRegistrations decimal.Decimal `json:"averageRegistrations"`
}
