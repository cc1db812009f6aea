package idempotency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T, store Store) (*echo.Echo, *int) {
	t.Helper()
	e := echo.New()
	calls := 0
	e.POST("/pay", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]interface{}{"invoice": calls})
	}, Middleware(store))
	return e, &calls
}

func post(e *echo.Echo, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_KeyRequired(t *testing.T) {
	e, calls := newTestServer(t, NewMemoryStore())

	rec := post(e, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if *calls != 0 {
		t.Error("handler must not run without a key")
	}
}

func TestMiddleware_ReplaysFirstResponse(t *testing.T) {
	e, calls := newTestServer(t, NewMemoryStore())

	first := post(e, "k-1")
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d", first.Code)
	}

	second := post(e, "k-1")
	if second.Code != http.StatusCreated {
		t.Errorf("replay status = %d, want 201", second.Code)
	}
	if second.Header().Get("Idempotency-Replayed") != "true" {
		t.Error("replay must carry the Idempotency-Replayed header")
	}
	if *calls != 1 {
		t.Errorf("handler ran %d times, want 1", *calls)
	}
	if !strings.Contains(second.Body.String(), `"invoice":1`) {
		t.Errorf("replay body = %s, want the first response", second.Body.String())
	}
}

func TestMiddleware_DistinctKeysRunSeparately(t *testing.T) {
	e, calls := newTestServer(t, NewMemoryStore())

	post(e, "k-1")
	post(e, "k-2")
	if *calls != 2 {
		t.Errorf("handler ran %d times, want 2", *calls)
	}
}

func TestMiddleware_ServerErrorsNotStored(t *testing.T) {
	store := NewMemoryStore()
	e := echo.New()
	fail := true
	e.POST("/pay", func(c echo.Context) error {
		if fail {
			return c.JSON(http.StatusInternalServerError, map[string]string{"status": "error"})
		}
		return c.JSON(http.StatusCreated, map[string]string{"status": "ok"})
	}, Middleware(store))

	if rec := post(e, "k-err"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("first status = %d", rec.Code)
	}

	// The key stays retryable after a server error.
	fail = false
	rec := post(e, "k-err")
	if rec.Code != http.StatusCreated {
		t.Errorf("retry status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("Idempotency-Replayed") == "true" {
		t.Error("a failed attempt must not be replayed")
	}
}

// Validation failures surfaced as returned errors are not stored, so
// the client can fix the request and retry under the same key.
func TestMiddleware_HandlerErrorsNotStored(t *testing.T) {
	store := NewMemoryStore()
	e := echo.New()
	fail := true
	e.POST("/pay", func(c echo.Context) error {
		if fail {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "quantity must be positive")
		}
		return c.JSON(http.StatusCreated, map[string]string{"status": "ok"})
	}, Middleware(store))

	if rec := post(e, "k-bad"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("first status = %d", rec.Code)
	}

	fail = false
	rec := post(e, "k-bad")
	if rec.Code != http.StatusCreated {
		t.Errorf("retry status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("Idempotency-Replayed") == "true" {
		t.Error("an error response must not be replayed")
	}
}

func TestMemoryStore_FirstWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if err := store.Put(ctx, &Record{Key: "k", StatusCode: 201, Body: []byte("first")}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, &Record{Key: "k", StatusCode: 200, Body: []byte("second")}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(rec.Body) != "first" {
		t.Errorf("body = %q, want the first write kept", rec.Body)
	}
}
