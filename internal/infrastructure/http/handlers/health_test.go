package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := NewHealthHandler().Liveness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Liveness returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]Check
		wantCode   int
		wantStatus string
	}{
		{"all healthy", map[string]Check{"postgres": ok, "mongodb": ok, "redis": ok}, http.StatusOK, "ok"},
		{"redis down", map[string]Check{"postgres": ok, "mongodb": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()

			if err := NewHealthDependenciesHandler(tt.checks).Readiness(e.NewContext(req, rec)); err != nil {
				t.Fatalf("Readiness returned error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
			if len(resp.Dependencies) != len(tt.checks) {
				t.Errorf("expected %d dependencies, got %v", len(tt.checks), resp.Dependencies)
			}
		})
	}
}
