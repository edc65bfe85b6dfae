package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
)

func TestEventService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         EventInput
		expectedDate  time.Time
		expectedError string
	}{
		{
			name:         "date only",
			input:        EventInput{Title: "Hackathon", Description: "24h", EventDate: "2026-04-10"},
			expectedDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "datetime-local",
			input:        EventInput{Title: "Hackathon", EventDate: "2026-04-10T09:30"},
			expectedDate: time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:         "rfc3339",
			input:        EventInput{Title: "Hackathon", EventDate: "2026-04-10T09:30:00Z"},
			expectedDate: time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:         "rfc3339 with offset",
			input:        EventInput{Title: "Hackathon", EventDate: "2026-04-10T10:00:00+05:30"},
			expectedDate: time.Date(2026, 4, 10, 4, 30, 0, 0, time.UTC),
		},
		{
			name:          "missing title",
			input:         EventInput{Title: "  ", EventDate: "2026-04-10"},
			expectedError: "Title and date are required",
		},
		{
			name:          "missing date",
			input:         EventInput{Title: "Hackathon"},
			expectedError: "Title and date are required",
		},
		{
			name:          "unparseable date",
			input:         EventInput{Title: "Hackathon", EventDate: "next friday"},
			expectedError: "Invalid event date, expected YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := new(MockEventRepository)
			if tt.expectedError == "" {
				eventRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).
					Run(func(args mock.Arguments) { args.Get(1).(*model.Event).ID = 11 }).
					Return(nil)
			}
			service := NewEventService(eventRepo, new(MockRegistrationRepository))

			event, err := service.Create(context.Background(), tt.input, 3)

			if tt.expectedError != "" {
				var validationErr *apperrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.expectedError, validationErr.Message)
				assert.Nil(t, event)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(11), event.ID)
				assert.Equal(t, uint(3), event.CreatedBy)
				assert.Equal(t, tt.input.Description, event.Description)
				assert.True(t, tt.expectedDate.Equal(event.EventDate))
				assert.Equal(t, time.UTC, event.EventDate.Location())
			}
			eventRepo.AssertExpectations(t)
		})
	}
}

func listFixture() []model.Event {
	dean := model.User{ID: 1, Name: "Dean"}
	return []model.Event{
		{ID: 2, Title: "Hackathon", EventDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), CreatedBy: 1, Creator: dean},
		{ID: 1, Title: "Orientation", EventDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), CreatedBy: 1, Creator: dean},
	}
}

func TestEventService_List_Admin(t *testing.T) {
	eventRepo := new(MockEventRepository)
	eventRepo.On("ListWithCreator", mock.Anything).Return(listFixture(), nil)
	eventRepo.On("RegistrationCounts", mock.Anything).Return(map[uint]int64{2: 5}, nil)
	regRepo := new(MockRegistrationRepository)
	service := NewEventService(eventRepo, regRepo)

	views, err := service.List(context.Background(), model.RoleAdmin, 1)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Dean", views[0].CreatedBy)
	require.NotNil(t, views[0].Registrations)
	assert.Equal(t, int64(5), *views[0].Registrations)
	require.NotNil(t, views[1].Registrations)
	assert.Equal(t, int64(0), *views[1].Registrations)
	assert.Nil(t, views[0].IsRegistered)
	eventRepo.AssertExpectations(t)
	regRepo.AssertNotCalled(t, "EventIDsByUser", mock.Anything, mock.Anything)
}

func TestEventService_List_Student(t *testing.T) {
	eventRepo := new(MockEventRepository)
	eventRepo.On("ListWithCreator", mock.Anything).Return(listFixture(), nil)
	regRepo := new(MockRegistrationRepository)
	eventRepo.On("RegistrationCounts", mock.Anything).Return(map[uint]int64{1: 3}, nil)
	regRepo.On("EventIDsByUser", mock.Anything, uint(9)).Return([]uint{1}, nil)
	service := NewEventService(eventRepo, regRepo)

	views, err := service.List(context.Background(), model.RoleStudent, 9)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.False(t, *views[0].IsRegistered)
	assert.True(t, *views[1].IsRegistered)
	require.NotNil(t, views[0].Registrations)
	assert.Equal(t, int64(0), *views[0].Registrations)
	assert.Equal(t, int64(3), *views[1].Registrations)
	eventRepo.AssertExpectations(t)
	regRepo.AssertExpectations(t)
}

func TestEventService_List_Empty(t *testing.T) {
	eventRepo := new(MockEventRepository)
	eventRepo.On("ListWithCreator", mock.Anything).Return([]model.Event{}, nil)
	eventRepo.On("RegistrationCounts", mock.Anything).Return(map[uint]int64{}, nil)
	regRepo := new(MockRegistrationRepository)
	regRepo.On("EventIDsByUser", mock.Anything, uint(9)).Return([]uint{}, nil)
	service := NewEventService(eventRepo, regRepo)

	views, err := service.List(context.Background(), model.RoleStudent, 9)

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestEventService_Stats(t *testing.T) {
	tests := []struct {
		name            string
		events, regs    int64
		expectedAverage string
	}{
		{"no events", 0, 0, "0"},
		{"even split", 4, 8, "2"},
		{"rounded", 3, 2, "0.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := new(MockEventRepository)
			eventRepo.On("Totals", mock.Anything).Return(tt.events, tt.regs, nil)
			service := NewEventService(eventRepo, new(MockRegistrationRepository))

			stats, err := service.Stats(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.events, stats.TotalEvents)
			assert.Equal(t, tt.regs, stats.TotalRegistrations)
			assert.True(t, decimal.RequireFromString(tt.expectedAverage).Equal(stats.AverageRegistrations))
		})
	}
}

func TestEventService_Update(t *testing.T) {
	t.Run("overwrites fields", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		eventRepo.On("Exists", mock.Anything, uint(4)).Return(true, nil)
		eventRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.ID == 4 && e.Title == "Renamed" && e.Description == ""
		})).Return(nil)
		service := NewEventService(eventRepo, new(MockRegistrationRepository))

		err := service.Update(context.Background(), 4, EventInput{Title: "Renamed", EventDate: "2026-06-01"})

		assert.NoError(t, err)
		eventRepo.AssertExpectations(t)
	})

	t.Run("missing event", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		eventRepo.On("Exists", mock.Anything, uint(4)).Return(false, nil)
		service := NewEventService(eventRepo, new(MockRegistrationRepository))

		err := service.Update(context.Background(), 4, EventInput{Title: "Renamed", EventDate: "2026-06-01"})

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		eventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("validation before lookup", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		service := NewEventService(eventRepo, new(MockRegistrationRepository))

		err := service.Update(context.Background(), 4, EventInput{Title: "Renamed"})

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		eventRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})
}

func TestEventService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		repoErr       error
		expectedError error
	}{
		{"deleted", nil, nil},
		{"missing", gorm.ErrRecordNotFound, apperrors.ErrEventNotFound},
		{"storage failure", errors.New("deadlock"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := new(MockEventRepository)
			eventRepo.On("DeleteWithRegistrations", mock.Anything, uint(5)).Return(tt.repoErr)
			service := NewEventService(eventRepo, new(MockRegistrationRepository))

			err := service.Delete(context.Background(), 5)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.repoErr != nil:
				assert.ErrorIs(t, err, tt.repoErr)
				assert.True(t, apperrors.MapErrorToHTTP(err).IsInternal())
			default:
				assert.NoError(t, err)
			}
			eventRepo.AssertExpectations(t)
		})
	}
}
