// Package idempotency guards financial POST endpoints (POS sales, goods
// receipts, stock returns) against duplicate submission. Clients send an
// Idempotency-Key header; the first response for a key is stored and replayed
// verbatim for any retry of the same key.
package idempotency

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// Record is a stored first response for an idempotency key.
type Record struct {
	Key        string
	StatusCode int
	Body       []byte
	CreatedAt  time.Time
}

// Store persists idempotency records.
type Store interface {
	// Get returns the record for key, or nil when the key is unseen.
	Get(ctx context.Context, key string) (*Record, error)
	// Put stores the first response for key. Later Puts for the same key
	// must not overwrite the original.
	Put(ctx context.Context, rec *Record) error
}

// MemoryStore is an in-memory Store used in tests and development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[key], nil
}

func (s *MemoryStore) Put(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.Key]; ok {
		return nil
	}
	s.records[rec.Key] = rec
	return nil
}

// responseRecorder tees the response body so it can be stored after the
// handler runs.
type responseRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware enforces the Idempotency-Key header on the wrapped routes.
// A missing key is a 400. A known key short-circuits the handler and replays
// the stored response with an Idempotency-Replayed marker header. Only
// responses the handler writes itself are stored, and never 5xx ones;
// responses produced by returning an error (including HTTP 4xx errors)
// bypass the store, so a failed attempt may be retried with the same key.
func Middleware(store Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get("Idempotency-Key")
			if key == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key header is required")
			}

			ctx := c.Request().Context()
			if rec, err := store.Get(ctx, key); err == nil && rec != nil {
				c.Response().Header().Set("Idempotency-Replayed", "true")
				return c.JSONBlob(rec.StatusCode, rec.Body)
			}

			rw := &responseRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rw

			err := next(c)
			if err != nil {
				return err
			}

			if rw.status < http.StatusInternalServerError {
				_ = store.Put(ctx, &Record{
					Key:        key,
					StatusCode: rw.status,
					Body:       rw.buf.Bytes(),
					CreatedAt:  time.Now(),
				})
			}
			return nil
		}
	}
}
