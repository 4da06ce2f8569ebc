package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Profile, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Profile{ID: "id-alice", FullName: "Alice", Role: "admin", IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "id-alice" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Profile, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := NewAuthHandler(stub).Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	for _, body := range []string{"{", `{"email":"not-an-email","password":"x"}`, `{"email":"a@b.co"}`} {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, *domain.Profile, error) {
				t.Fatalf("should not be called")
				return "", nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		serve(e, c, NewAuthHandler(stub).Login)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_SetPassword(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubAuthService{
		setPasswordFn: func(ctx context.Context, purpose, token, password string) error {
			called = true
			if purpose != "invite" || token != "tok" || password != "long-enough" {
				t.Fatalf("unexpected args: %s %s %s", purpose, token, password)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/password", strings.NewReader(`{"type":"invite","token":"tok","password":"long-enough"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewAuthHandler(stub).SetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after calling the service, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthHandler_SetPassword_Validation(t *testing.T) {
	bodies := []string{
		`{"type":"signup","token":"tok","password":"long-enough"}`,
		`{"type":"reset","token":"tok","password":"short"}`,
		`{"type":"reset","password":"long-enough"}`,
	}
	for _, body := range bodies {
		e := newTestEcho()
		stub := &stubAuthService{
			setPasswordFn: func(ctx context.Context, purpose, token, password string) error {
				t.Fatalf("should not be called")
				return nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/auth/password", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		serve(e, c, NewAuthHandler(stub).SetPassword)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}
