package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/squartrbnb/user-service/internal/api/handler"
	"github.com/squartrbnb/user-service/internal/api/middleware"
	"github.com/squartrbnb/user-service/internal/core/domain"
	"github.com/squartrbnb/user-service/internal/core/ports"
)

type routerUsers struct {
	created []ports.CreateUserInput
}

func (s *routerUsers) GetByID(_ context.Context, id int64) (*ports.UserView, error) {
	if id != 1 {
		return nil, &domain.NotFoundError{Resource: domain.ResourceUser, Field: "id", Value: id}
	}
	return &ports.UserView{ID: 1, Username: "alice", Email: "alice@x.com"}, nil
}

func (s *routerUsers) GetByEmail(_ context.Context, email string) (*ports.UserView, error) {
	return &ports.UserView{ID: 1, Username: "alice", Email: email}, nil
}

func (s *routerUsers) GetByUsername(_ context.Context, username string) (*ports.UserView, error) {
	return &ports.UserView{ID: 1, Username: username, Email: "alice@x.com"}, nil
}

func (s *routerUsers) List(context.Context) ([]ports.UserView, error) {
	return []ports.UserView{}, nil
}

func (s *routerUsers) Create(_ context.Context, in ports.CreateUserInput) (*ports.UserView, error) {
	s.created = append(s.created, in)
	return &ports.UserView{
		ID:        7,
		Username:  in.Username,
		Email:     in.Email,
		BirthDate: in.BirthDate,
		Role:      &ports.RoleView{ID: 1, Name: domain.DefaultRoleName},
	}, nil
}

func (s *routerUsers) Update(_ context.Context, id int64, _ ports.UpdateUserInput) (*ports.UserView, error) {
	return &ports.UserView{ID: id}, nil
}

func (s *routerUsers) Delete(context.Context, int64) error {
	return nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 30 * time.Second, nil
}

type keyRecorder struct {
	keys []string
}

func (r *keyRecorder) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	r.keys = append(r.keys, key)
	return true, 0, nil
}

func newTestRouter(users ports.UserService, limiter bool) *echo.Echo {
	var l middleware.Limiter
	if limiter {
		l = denyLimiter{}
	}
	return newTestRouterWithLimiter(users, l)
}

func newTestRouterWithLimiter(users ports.UserService, limiter middleware.Limiter) *echo.Echo {
	return NewRouter(Dependencies{
		Users:      users,
		Limiter:    limiter,
		Checks:     map[string]handler.Check{"store": func(context.Context) error { return nil }},
		Registerer: prometheus.NewRegistry(),
		Logger:     zerolog.Nop(),
	})
}

func serve(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter(&routerUsers{}, false)

	rec, _ := serve(t, e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, body := serve(t, e, http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok readiness, got %v", body["status"])
	}
}

func TestRouter_ErrorCodes(t *testing.T) {
	e := newTestRouter(&routerUsers{}, false)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"non-numeric id", http.MethodGet, "/api/users/abc", http.StatusBadRequest, "ERR_INVALID_ARGUMENT"},
		{"unknown user", http.MethodGet, "/api/users/99", http.StatusNotFound, "ERR_USER_NOT_FOUND"},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, "ERR_NOT_FOUND"},
		{"unsupported method", http.MethodPatch, "/api/users/1", http.StatusMethodNotAllowed, "ERR_METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(t, e, tt.method, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if body["errorCode"] != tt.wantCode {
				t.Errorf("expected %s, got %v", tt.wantCode, body["errorCode"])
			}
			if body["path"] != tt.target {
				t.Errorf("expected path %s, got %v", tt.target, body["path"])
			}
		})
	}
}

func TestRouter_CreateUser(t *testing.T) {
	users := &routerUsers{}
	e := newTestRouter(users, false)

	body := `{"username":"alice","nom":"Liddell","prenom":"Alice","email":"alice@x.com",` +
		`"dateNaissance":"1990-01-01","password":"Secret123!"}`
	rec, out := serve(t, e, http.MethodPost, "/api/users", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(users.created) != 1 || users.created[0].Username != "alice" {
		t.Fatalf("service not called as expected: %+v", users.created)
	}
	if users.created[0].RoleID.IsSet() {
		t.Error("expected role to be left to the default")
	}
	if out["id"] != float64(7) {
		t.Errorf("unexpected id %v", out["id"])
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("expected a request id header")
	}
}

func TestRouter_CreateUser_ValidationError(t *testing.T) {
	users := &routerUsers{}
	e := newTestRouter(users, false)

	rec, out := serve(t, e, http.MethodPost, "/api/users", `{"username":"al"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if out["errorCode"] != "ERR_VALIDATION" {
		t.Errorf("expected ERR_VALIDATION, got %v", out["errorCode"])
	}
	fields, ok := out["validationErrors"].(map[string]any)
	if !ok || fields["username"] == nil || fields["email"] == nil {
		t.Errorf("expected per-field messages, got %v", out["validationErrors"])
	}
	if len(users.created) != 0 {
		t.Error("service must not be called on invalid input")
	}
}

func TestRouter_RateLimitedWrites(t *testing.T) {
	e := newTestRouter(&routerUsers{}, true)

	rec, out := serve(t, e, http.MethodDelete, "/api/users/1", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if out["errorCode"] != "ERR_RATE_LIMITED" {
		t.Errorf("expected ERR_RATE_LIMITED, got %v", out["errorCode"])
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Errorf("expected Retry-After 30, got %q", got)
	}

	// reads are never limited
	rec, _ = serve(t, e, http.MethodGet, "/api/users/1", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for read, got %d", rec.Code)
	}
}

func TestRouter_RateLimitKeyIgnoresForwardingHeaders(t *testing.T) {
	rec := &keyRecorder{}
	e := newTestRouterWithLimiter(&routerUsers{}, rec)

	for _, forwarded := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
		req.RemoteAddr = "192.0.2.10:4321"
		req.Header.Set(echo.HeaderXForwardedFor, forwarded)
		req.Header.Set(echo.HeaderXRealIP, forwarded)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	}

	if len(rec.keys) != 2 || rec.keys[0] != "192.0.2.10" || rec.keys[1] != "192.0.2.10" {
		t.Errorf("expected both requests keyed on the peer address, got %v", rec.keys)
	}
}
