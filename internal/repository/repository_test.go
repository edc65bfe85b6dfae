package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/manibhaskar29/college-event-management-system/internal/db"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "events.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	gormDB, err := db.Open(db.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func seedUser(t *testing.T, gormDB *gorm.DB, name, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "hash", Role: role}
	require.NoError(t, NewUserRepository(gormDB).Create(context.Background(), user))
	return user
}

func seedEvent(t *testing.T, gormDB *gorm.DB, title string, date time.Time, createdBy uint) *model.Event {
	t.Helper()
	event := &model.Event{Title: title, EventDate: date, CreatedBy: createdBy}
	require.NoError(t, NewEventRepository(gormDB).Create(context.Background(), event))
	return event
}
