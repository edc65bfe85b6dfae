package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"

	"github.com/manibhaskar29/college-event-management-system/docs" // swagger docs
	"github.com/manibhaskar29/college-event-management-system/internal/auth"
	"github.com/manibhaskar29/college-event-management-system/internal/cache"
	"github.com/manibhaskar29/college-event-management-system/internal/config"
	"github.com/manibhaskar29/college-event-management-system/internal/db"
	"github.com/manibhaskar29/college-event-management-system/internal/handler"
	"github.com/manibhaskar29/college-event-management-system/internal/metrics"
	"github.com/manibhaskar29/college-event-management-system/internal/repository"
	"github.com/manibhaskar29/college-event-management-system/internal/router"
	"github.com/manibhaskar29/college-event-management-system/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	dbProbeInterval = 30 * time.Second
)

// @title College Event Management API
// @version 1.0
// @description Admins create and manage college events; students browse them and register.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.SlogLevel(),
			TimeFormat: time.RFC1123Z,
		}),
	))

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		slog.Error("database handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		slog.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			slog.Error("reset database", "error", err)
			os.Exit(1)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		slog.Warn("redis unreachable, login throttling disabled until it recovers", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	registrationRepo := repository.NewRegistrationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpire)
	loginGuard := auth.NewLoginGuard(cacheClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, loginGuard)
	eventService := service.NewEventService(eventRepo, registrationRepo)
	registrationService := service.NewRegistrationService(eventRepo, registrationRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(
		e,
		cfg,
		jwtService,
		sqlDB,
		handler.NewAuthHandler(authService),
		handler.NewEventHandler(eventService),
		handler.NewRegistrationHandler(registrationService),
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go metrics.WatchDatabase(ctx, sqlDB, dbProbeInterval)

	addr := ":" + cfg.ServerPort
	go func() {
		slog.Info("server listening", "addr", addr, "swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown", "error", err)
	}
}
