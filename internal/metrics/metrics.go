package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "college_events_http_requests_total",
		Help: "HTTP requests handled, by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "college_events_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// EventsCreated counts events created by admins.
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_events_events_created_total",
		Help: "Events created",
	})

	// RegistrationsCreated counts successful student registrations.
	RegistrationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_events_registrations_total",
		Help: "Successful event registrations",
	})

	// LoginFailures counts rejected logins by reason.
	LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "college_events_login_failures_total",
		Help: "Rejected login attempts, by reason",
	}, []string{"reason"})

	databasePing = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "college_events_database_ping_microsec",
		Help: "The latency of a database ping in microseconds",
	})
)

// Middleware records request counts and latency per matched route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WatchDatabase pings the database every interval and publishes the latency
// until ctx is cancelled.
func WatchDatabase(ctx context.Context, db Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			if err := db.PingContext(ctx); err != nil {
				slog.Error("can't ping database", "error", err)
				continue
			}
			databasePing.Set(float64(time.Since(start).Microseconds()))
		}
	}
}
