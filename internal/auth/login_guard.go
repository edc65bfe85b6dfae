package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/manibhaskar29/college-event-management-system/internal/cache"
)

const loginFailureKeyPrefix = "login_failures:"

// LoginGuard throttles repeated failed logins per email.
type LoginGuard interface {
	Blocked(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// RedisLoginGuard counts failures in Redis. When Redis is unreachable it
// never blocks.
type RedisLoginGuard struct {
	cache       *cache.Client
	maxAttempts int
	window      time.Duration
}

// Ensure RedisLoginGuard implements LoginGuard
var _ LoginGuard = (*RedisLoginGuard)(nil)

// NewLoginGuard creates a guard. maxAttempts <= 0 disables throttling.
func NewLoginGuard(cache *cache.Client, maxAttempts int, window time.Duration) *RedisLoginGuard {
	return &RedisLoginGuard{cache: cache, maxAttempts: maxAttempts, window: window}
}

// Blocked reports whether the email has reached the failure limit in the current window.
func (g *RedisLoginGuard) Blocked(ctx context.Context, email string) bool {
	if g.maxAttempts <= 0 {
		return false
	}
	data, _ := g.cache.Get(ctx, failureKey(email))
	if data == nil {
		return false
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return false
	}
	return n >= g.maxAttempts
}

// RecordFailure counts one failed attempt.
func (g *RedisLoginGuard) RecordFailure(ctx context.Context, email string) {
	if g.maxAttempts <= 0 {
		return
	}
	_, _ = g.cache.Incr(ctx, failureKey(email), g.window)
}

// Reset clears the failure count after a successful login.
func (g *RedisLoginGuard) Reset(ctx context.Context, email string) {
	if g.maxAttempts <= 0 {
		return
	}
	_ = g.cache.Delete(ctx, failureKey(email))
}

func failureKey(email string) string {
	return loginFailureKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
