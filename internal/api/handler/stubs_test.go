package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

type stubAuthService struct {
	loginFn       func(ctx context.Context, email, password string) (string, *domain.Profile, error)
	setPasswordFn func(ctx context.Context, purpose, token, password string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) SetPassword(ctx context.Context, purpose, token, password string) error {
	return s.setPasswordFn(ctx, purpose, token, password)
}

type stubNotifier struct {
	assignFn         func(ctx context.Context, shiftID string, ids []string) (*ports.AssignResult, error)
	unassignFn       func(ctx context.Context, shiftID string, ids []string) error
	notifyAssignedFn func(ctx context.Context, shiftID string, ids []string) (*ports.NotifyResult, error)
	notifyUpdatedFn  func(ctx context.Context, shiftID string, changes domain.ShiftChanges) (*ports.NotifyResult, error)
}

func (s *stubNotifier) Assign(ctx context.Context, shiftID string, ids []string) (*ports.AssignResult, error) {
	return s.assignFn(ctx, shiftID, ids)
}

func (s *stubNotifier) Unassign(ctx context.Context, shiftID string, ids []string) error {
	return s.unassignFn(ctx, shiftID, ids)
}

func (s *stubNotifier) NotifyAssigned(ctx context.Context, shiftID string, ids []string) (*ports.NotifyResult, error) {
	return s.notifyAssignedFn(ctx, shiftID, ids)
}

func (s *stubNotifier) NotifyUpdated(ctx context.Context, shiftID string, changes domain.ShiftChanges) (*ports.NotifyResult, error) {
	return s.notifyUpdatedFn(ctx, shiftID, changes)
}

type stubProvisioning struct {
	provisionFn func(ctx context.Context, in ports.ProvisionInput) (*ports.ProvisionResult, error)
}

func (s *stubProvisioning) Provision(ctx context.Context, in ports.ProvisionInput) (*ports.ProvisionResult, error) {
	return s.provisionFn(ctx, in)
}

var (
	_ ports.AuthService         = (*stubAuthService)(nil)
	_ ports.ChangeNotifier      = (*stubNotifier)(nil)
	_ ports.ProvisioningService = (*stubProvisioning)(nil)
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newAdminContext builds a context as the Auth middleware would leave it.
func newAdminContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "id-admin")
	c.Set("role", domain.RoleAdmin)
	return c, rec
}

// serve runs h and lets echo render a returned error, as the router would.
func serve(e *echo.Echo, c echo.Context, h echo.HandlerFunc) {
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
}

const (
	testShiftID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testWorkerA = "0f8fad5b-d9cb-469f-a165-70867728950e"
	testWorkerB = "9b2c1f4e-3a6d-4e8b-9c0f-1d2e3f4a5b6c"
)

func withShiftID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}
