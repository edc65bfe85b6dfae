package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/manibhaskar29/college-event-management-system/internal/auth"
	"github.com/manibhaskar29/college-event-management-system/internal/config"
	"github.com/manibhaskar29/college-event-management-system/internal/db"
	apperrors "github.com/manibhaskar29/college-event-management-system/internal/errors"
	"github.com/manibhaskar29/college-event-management-system/internal/model"
	"github.com/manibhaskar29/college-event-management-system/internal/repository"
	"github.com/manibhaskar29/college-event-management-system/internal/service"
)

// SeedUser is an account to create.
type SeedUser struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// SeedEvent is an event to create, owned by the first admin in the file.
type SeedEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
}

// SeedData is the document read from SEED_SOURCE.
type SeedData struct {
	Users  []SeedUser  `json:"users"`
	Events []SeedEvent `json:"events"`
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})))
	slog.Info("starting seed script")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("loading seed data", "source", cfg.SeedSource)
	data, err := loadSeedData(cfg.SeedSource)
	if err != nil {
		slog.Error("failed to load seed data", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	registrationRepo := repository.NewRegistrationRepository(gormDB)
	seeder := &seeder{
		users:     userRepo,
		events:    eventRepo,
		auth:      service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpire), auth.NewLoginGuard(nil, 0, 0)),
		eventsSvc: service.NewEventService(eventRepo, registrationRepo),
	}

	result, err := seeder.seed(context.Background(), data)
	if err != nil {
		slog.Error("failed to seed", "error", err)
		os.Exit(1)
	}

	slog.Info("seed completed",
		"users_created", result.usersCreated,
		"users_existing", result.usersExisting,
		"events_created", result.eventsCreated,
		"events_existing", result.eventsExisting,
	)
}

// loadSeedData reads the seed document from an http(s) URL or a local file.
func loadSeedData(source string) (*SeedData, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var data SeedData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &data, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

type seedResult struct {
	usersCreated, usersExisting   int
	eventsCreated, eventsExisting int
}

type seeder struct {
	users     repository.UserRepository
	events    repository.EventRepository
	auth      service.AuthService
	eventsSvc service.EventService
}

// seed creates missing users, then missing events owned by the first admin.
// Running it twice changes nothing.
func (s *seeder) seed(ctx context.Context, data *SeedData) (seedResult, error) {
	var result seedResult
	var owner *model.User

	for _, u := range data.Users {
		_, err := s.auth.Register(ctx, u.Name, u.Email, u.Password, u.Role)
		switch {
		case err == nil:
			result.usersCreated++
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			result.usersExisting++
		default:
			return result, fmt.Errorf("error creating user %s: %w", u.Email, err)
		}

		if owner == nil {
			user, err := s.users.FindByEmail(ctx, strings.TrimSpace(u.Email))
			if err != nil {
				return result, fmt.Errorf("error loading user %s: %w", u.Email, err)
			}
			if user.Role == model.RoleAdmin {
				owner = user
			}
		}
	}

	if len(data.Events) == 0 {
		return result, nil
	}
	if owner == nil {
		return result, errors.New("seed data has events but no admin user to own them")
	}

	existing, err := s.events.ListWithCreator(ctx)
	if err != nil {
		return result, fmt.Errorf("error listing events: %w", err)
	}
	titles := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		titles[e.Title] = struct{}{}
	}

	for _, e := range data.Events {
		if _, ok := titles[strings.TrimSpace(e.Title)]; ok {
			result.eventsExisting++
			continue
		}
		input := service.EventInput{Title: e.Title, Description: e.Description, EventDate: e.EventDate}
		if _, err := s.eventsSvc.Create(ctx, input, owner.ID); err != nil {
			return result, fmt.Errorf("error creating event %q: %w", e.Title, err)
		}
		result.eventsCreated++
	}

	return result, nil
}
