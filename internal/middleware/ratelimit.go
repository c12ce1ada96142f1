package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ledgerkeep/core/internal/domain"
)

// RateLimiterConfig configures a token-bucket rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	// KeyFunc extracts the rate-limit key from the request. Defaults to
	// the client IP via echo.Context.RealIP.
	KeyFunc func(c echo.Context) string
}

// DefaultRateLimiterConfig is a generous per-IP default for ordinary
// API traffic.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   time.Minute,
	}
}

// StrictRateLimiterConfig is for sensitive, low-volume endpoints like
// login.
func StrictRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         5,
		CleanupInterval:   time.Minute,
	}
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

// RateLimiter is an in-memory, per-key token bucket limiter. It holds
// no per-tenant state of its own — the key function decides what
// "per" means (by IP here; callers needing per-tenant limits can set
// KeyFunc to read domain.PrincipalFromContext).
type RateLimiter struct {
	config  RateLimiterConfig
	buckets map[string]*tokenBucket
	mu      sync.RWMutex
	stop    chan struct{}
}

// NewRateLimiter builds a RateLimiter and starts its cleanup goroutine.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string { return c.RealIP() }
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	rl := &RateLimiter{config: config, buckets: make(map[string]*tokenBucket), stop: make(chan struct{})}
	go rl.cleanup()
	return rl
}

// Allow reports whether a request under key may proceed, consuming one
// token if so.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	bucket, exists := rl.buckets[key]
	if !exists {
		bucket = &tokenBucket{tokens: float64(rl.config.BurstSize), lastRefill: time.Now()}
		rl.buckets[key] = bucket
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * rl.config.RequestsPerSecond
	if bucket.tokens > float64(rl.config.BurstSize) {
		bucket.tokens = float64(rl.config.BurstSize)
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}
	return false
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanupOnce()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanupOnce() {
	now := time.Now()
	var stale []string

	rl.mu.Lock()
	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		isStale := bucket.tokens >= float64(rl.config.BurstSize) && now.Sub(bucket.lastRefill) > rl.config.CleanupInterval
		bucket.mu.Unlock()
		if isStale {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		delete(rl.buckets, key)
	}
	rl.mu.Unlock()
}

// Stop halts the cleanup goroutine. Unused outside tests today — the
// process-lifetime limiter the router builds through StrictRateLimit
// never needs to stop.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Middleware applies rl to every request it wraps, rejecting with
// ERATELIMIT once the caller's bucket is empty.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rl.config.KeyFunc(c)
			if !rl.Allow(key) {
				c.Response().Header().Set("Retry-After", "1")
				return &domain.Error{Code: domain.ERATELIMIT, Op: "middleware.RateLimit", Message: "too many requests"}
			}
			return next(c)
		}
	}
}

// RateLimit builds a RateLimiter from config (or DefaultRateLimiterConfig
// if omitted) and returns its middleware.
func RateLimit(config ...RateLimiterConfig) echo.MiddlewareFunc {
	cfg := DefaultRateLimiterConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	return NewRateLimiter(cfg).Middleware()
}

// StrictRateLimit applies StrictRateLimiterConfig, for login and other
// brute-forceable endpoints.
func StrictRateLimit() echo.MiddlewareFunc {
	return RateLimit(StrictRateLimiterConfig())
}
