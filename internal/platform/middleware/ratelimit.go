package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig tunes the per-client request rate.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig returns the rate applied when the deployment
// does not configure one.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

// staleAfter is how long a client may stay idle before its bucket is
// pruned.
const staleAfter = 10 * time.Minute

// visitor is one client's token bucket.
type visitor struct {
	tokens   float64
	lastSeen time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      float64
	burst     float64
	lastSweep time.Time
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      cfg.RequestsPerSecond,
		burst:     float64(cfg.BurstSize),
		lastSweep: time.Now(),
	}
}

// take refills the client's bucket for the time elapsed since its last
// request and spends one token. It reports whether the request may pass
// and, when it may not, how long until a token becomes available. Stale
// visitors are swept here rather than by a background goroutine.
func (l *rateLimiter) take(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > staleAfter {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > staleAfter {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{tokens: l.burst}
		l.visitors[key] = v
	} else {
		v.tokens = math.Min(l.burst, v.tokens+now.Sub(v.lastSeen).Seconds()*l.rate)
	}
	v.lastSeen = now

	if v.tokens >= 1 {
		v.tokens--
		return true, 0
	}
	if l.rate <= 0 {
		return false, time.Second
	}
	return false, time.Duration((1 - v.tokens) / l.rate * float64(time.Second))
}

// RateLimit throttles requests per client IP.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	limiter := newRateLimiter(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := limiter.take(c.RealIP(), time.Now())
			c.Response().Header().Set("X-RateLimit-Limit", limitHeader)
			if !ok {
				retry := int(math.Ceil(wait.Seconds()))
				if retry < 1 {
					retry = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
