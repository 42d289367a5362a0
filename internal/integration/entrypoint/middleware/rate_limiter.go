package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/cepet-deal/backend/internal/domain/error"
	"github.com/cepet-deal/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxExports is how many report exports a dealer may start per window.
	defaultMaxExports = 10
	// defaultExportWindow is the throttling window for report exports.
	defaultExportWindow = 1 * time.Minute
)

// exportLimitEntry tracks export attempts for a single dealer.
type exportLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// ExportRateLimiter throttles report generation per dealer. Exports walk the
// full unpaginated transaction set and render a document, so a runaway client
// must not be able to queue them unboundedly.
type ExportRateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*exportLimitEntry
	maxAttempts int
	window      time.Duration
}

// NewExportRateLimiter creates an export rate limiter with default settings.
func NewExportRateLimiter() *ExportRateLimiter {
	return NewExportRateLimiterWithConfig(defaultMaxExports, defaultExportWindow)
}

// NewExportRateLimiterWithConfig creates an export rate limiter with custom settings.
func NewExportRateLimiterWithConfig(maxAttempts int, window time.Duration) *ExportRateLimiter {
	return &ExportRateLimiter{
		entries:     make(map[string]*exportLimitEntry),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Middleware returns a Gin handler that enforces the export limit. It keys on
// the authenticated dealer and falls back to the client IP before auth ran.
func (rl *ExportRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if dealerID, ok := GetDealerIDFromContext(c); ok {
			key = dealerID.String()
		}

		if !rl.allow(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many export requests. Please try again later.",
				Code:  string(domainerror.ErrCodeExportRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks whether another export from the given key fits in the window.
func (rl *ExportRateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &exportLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// Reset clears the limiter state.
func (rl *ExportRateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*exportLimitEntry)
}

// Cleanup removes expired entries to bound memory between windows.
func (rl *ExportRateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
