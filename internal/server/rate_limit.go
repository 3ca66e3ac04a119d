package server

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/matmulbench/pkg/models"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is both the sustained rate and the burst size per
	// client. Default: 60
	RequestsPerMinute int
	// CleanupInterval is how often idle clients are forgotten.
	// Default: 5 minutes
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 60,
		CleanupInterval:   5 * time.Minute,
	}
}

// RateLimiter keeps one token bucket per client IP. Buckets refill
// continuously at RequestsPerMinute and hold at most that many tokens.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	perSec   float64
	cleanup  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// Call Stop to release it.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = DefaultRateLimiterConfig().RequestsPerMinute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultRateLimiterConfig().CleanupInterval
	}

	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(config.RequestsPerMinute),
		perSec:   float64(config.RequestsPerMinute) / 60,
		cleanup:  config.CleanupInterval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from client may proceed.
func (rl *RateLimiter) Allow(client string) bool {
	ok, _ := rl.Reserve(client)
	return ok
}

// Reserve takes a token from the client's bucket. When the bucket is empty
// it returns false and the time until the next token.
func (rl *RateLimiter) Reserve(client string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{tokens: rl.capacity, seen: now}
		rl.buckets[client] = b
	}
	b.tokens = math.Min(rl.capacity, b.tokens+now.Sub(b.seen).Seconds()*rl.perSec)
	b.seen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	wait := time.Duration((1 - b.tokens) / rl.perSec * float64(time.Second))
	return false, wait
}

// cleanupLoop forgets clients whose bucket has been full for a while.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	refillTime := time.Duration(rl.capacity / rl.perSec * float64(time.Second))
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for client, b := range rl.buckets {
				if now.Sub(b.seen) > refillTime {
					delete(rl.buckets, client)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine. It may be called more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// RateLimitMiddleware answers 429 Too Many Requests, with a Retry-After
// header, once a client has used up its bucket.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.Reserve(getClientIP(r))
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "Rate limit exceeded. Please try again later.",
			})
			return
		}
		next(w, r)
	}
}

// getClientIP returns the first X-Forwarded-For address, else X-Real-IP,
// else the host part of RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
