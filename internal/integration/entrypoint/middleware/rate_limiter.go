package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/integration/entrypoint/dto"
)

const loginRateLimitKeyPrefix = "ratelimit:login:"

// AttemptCounter counts attempts per key inside a fixed window.
type AttemptCounter interface {
	// Increment records one attempt and returns the attempts so far and the time until the window resets.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter limits attempts per client IP within a fixed window.
type RateLimiter struct {
	counter     AttemptCounter
	maxAttempts int
	window      time.Duration
}

// NewRateLimiter creates a rate limiter counting attempts with counter.
func NewRateLimiter(counter AttemptCounter, maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counter:     counter,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		attempts, resetIn, err := rl.counter.Increment(c.Request.Context(), clientIP, rl.window)
		if err != nil {
			// A broken counter must not lock every user out.
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if attempts > int64(rl.maxAttempts) {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Round(time.Second).Seconds())))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// incrementScript opens the window on the first attempt only, so later attempts never extend it.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1])}
`)

// RedisAttemptCounter keeps attempt counters in Redis so every instance shares them.
type RedisAttemptCounter struct {
	client redis.UniversalClient
}

// NewRedisAttemptCounter creates a counter backed by client.
func NewRedisAttemptCounter(client redis.UniversalClient) *RedisAttemptCounter {
	return &RedisAttemptCounter{client: client}
}

// Increment implements AttemptCounter.
func (r *RedisAttemptCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := incrementScript.Run(ctx, r.client, []string{loginRateLimitKeyPrefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count attempt: %w", err)
	}
	return res[0], time.Duration(res[1]) * time.Millisecond, nil
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int64
	resetTime time.Time
}

// MemoryAttemptCounter keeps attempt counters in process memory.
type MemoryAttemptCounter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryAttemptCounter creates an in-process counter.
func NewMemoryAttemptCounter() *MemoryAttemptCounter {
	return &MemoryAttemptCounter{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Increment implements AttemptCounter.
func (m *MemoryAttemptCounter) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	entry, exists := m.entries[key]
	if !exists || now.After(entry.resetTime) {
		entry = &rateLimitEntry{resetTime: now.Add(window)}
		m.entries[key] = entry
	}
	entry.attempts++

	return entry.attempts, entry.resetTime.Sub(now), nil
}

// Cleanup removes expired entries.
func (m *MemoryAttemptCounter) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, entry := range m.entries {
		if now.After(entry.resetTime) {
			delete(m.entries, key)
		}
	}
}
