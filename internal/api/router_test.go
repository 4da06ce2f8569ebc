package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/http/handlers"
)

const (
	testSecret  = "router-secret"
	testShiftID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testWorker  = "0f8fad5b-d9cb-469f-a165-70867728950e"
)

var (
	assignPath = "/shifts/" + testShiftID + "/assign"
	assignBody = `{"employee_ids":["` + testWorker + `"]}`
)

type fakeAuth struct{ err error }

func (f fakeAuth) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	return "", nil, f.err
}

func (f fakeAuth) SetPassword(ctx context.Context, purpose, token, password string) error {
	return f.err
}

type fakeNotifier struct{ err error }

func (f fakeNotifier) Assign(ctx context.Context, shiftID string, ids []string) (*ports.AssignResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ports.AssignResult{Added: ids, Notifications: ports.NotificationsNone}, nil
}

func (f fakeNotifier) Unassign(ctx context.Context, shiftID string, ids []string) error {
	return f.err
}

func (f fakeNotifier) NotifyAssigned(ctx context.Context, shiftID string, ids []string) (*ports.NotifyResult, error) {
	return nil, f.err
}

func (f fakeNotifier) NotifyUpdated(ctx context.Context, shiftID string, changes domain.ShiftChanges) (*ports.NotifyResult, error) {
	return nil, f.err
}

type fakeProvisioning struct{ err error }

func (f fakeProvisioning) Provision(ctx context.Context, in ports.ProvisionInput) (*ports.ProvisionResult, error) {
	return nil, f.err
}

func newTestRouter(auth, notifier, provisioning error) http.Handler {
	return NewRouter(Dependencies{
		Auth:         fakeAuth{err: auth},
		Notifier:     fakeNotifier{err: notifier},
		Provisioning: fakeProvisioning{err: provisioning},
		HealthChecks: map[string]handlers.Check{"postgres": func(context.Context) error { return nil }},
		JWTSecret:    testSecret,
		Log:          zerolog.Nop(),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "id-admin",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func do(h http.Handler, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AdminRoutesRequireAdmin(t *testing.T) {
	h := newTestRouter(nil, nil, nil)
	if rec := do(h, http.MethodPost, assignPath, assignBody, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
	if rec := do(h, http.MethodPost, assignPath, assignBody, bearer(t, domain.RoleEmployee)); rec.Code != http.StatusForbidden {
		t.Fatalf("employee: expected 403, got %d", rec.Code)
	}
	if rec := do(h, http.MethodPost, assignPath, assignBody, bearer(t, domain.RoleAdmin)); rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MalformedShiftIDIsBadRequest(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	rec := do(h, http.MethodPost, "/shifts/shift-1/assign", assignBody, bearer(t, domain.RoleAdmin))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_UnknownRouteIsNotFound(t *testing.T) {
	h := newTestRouter(nil, nil, nil)
	if rec := do(h, http.MethodGet, "/nope", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	rollback := &domain.RollbackError{IdentityID: "id-1", Original: errors.New("insert"), Rollback: errors.New("delete")}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", fmt.Errorf("%w: empty worker list", domain.ErrInvalidRequest), http.StatusBadRequest},
		{"shift not found", domain.ErrShiftNotFound, http.StatusNotFound},
		{"unknown worker", fmt.Errorf("upsert assignments: %w", domain.ErrWorkerNotFound), http.StatusNotFound},
		{"storage", fmt.Errorf("list assignees: %w: %w", domain.ErrStorage, errors.New("conn reset")), http.StatusInternalServerError},
		{"unavailable", domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(nil, tc.err, nil)
			rec := do(h, http.MethodPost, assignPath, assignBody, bearer(t, domain.RoleAdmin))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}

	provisioning := []struct {
		name string
		err  error
		want int
	}{
		{"identity creation", fmt.Errorf("%w: upstream", domain.ErrIdentityCreationFailed), http.StatusBadGateway},
		{"profile creation", fmt.Errorf("%w: insert", domain.ErrProfileCreationFailed), http.StatusInternalServerError},
		{"rollback", rollback, http.StatusInternalServerError},
	}
	for _, tc := range provisioning {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(nil, nil, tc.err)
			rec := do(h, http.MethodPost, "/workers", `{"email":"a@example.com","full_name":"A B"}`, bearer(t, domain.RoleAdmin))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRouter_RollbackMessageIsDistinct(t *testing.T) {
	err := &domain.RollbackError{IdentityID: "id-1", Original: domain.ErrProfileCreationFailed, Rollback: errors.New("delete")}
	h := newTestRouter(nil, nil, err)

	rec := do(h, http.MethodPost, "/workers", `{"email":"a@example.com","full_name":"A B"}`, bearer(t, domain.RoleAdmin))

	var resp errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
		t.Fatalf("invalid json: %v", jerr)
	}
	if resp.Error == "profile creation failed" || !strings.Contains(resp.Error, "cleanup failed") {
		t.Fatalf("expected the rollback message, got %q", resp.Error)
	}
}

func TestRouter_LoginFailureIsUnauthorized(t *testing.T) {
	h := newTestRouter(domain.ErrInvalidCredentials, nil, nil)

	rec := do(h, http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"x"}`, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(nil, nil, nil)

	if rec := do(h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
