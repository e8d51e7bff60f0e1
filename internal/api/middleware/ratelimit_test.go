package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed bool
	wait    time.Duration
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.wait, s.err
}

func runRateLimit(t *testing.T, limiter Limiter) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})
	err := handler(c)
	return rec, called, err
}

func TestRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	rec, called, err := runRateLimit(t, limiter)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusCreated {
		t.Fatalf("expected next handler to run, got %d", rec.Code)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.7" {
		t.Errorf("expected client ip as key, got %v", limiter.keys)
	}
}

func TestRateLimit_Rejects(t *testing.T) {
	rec, called, err := runRateLimit(t, &stubLimiter{allowed: false, wait: 1500 * time.Millisecond})

	if called {
		t.Fatal("should not reach next handler")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 HTTPError, got %v", err)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Errorf("expected Retry-After 2, got %q", got)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	_, called, err := runRateLimit(t, &stubLimiter{err: errors.New("redis down")})

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("limiter failure must not block the request")
	}
}
