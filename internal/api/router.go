package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/stagecrew/crew-scheduler/docs"
	"github.com/stagecrew/crew-scheduler/internal/api/handler"
	"github.com/stagecrew/crew-scheduler/internal/api/middleware"
	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	infrahttp "github.com/stagecrew/crew-scheduler/internal/infrastructure/http"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer exposes.
type Dependencies struct {
	Auth         ports.AuthService
	Notifier     ports.ChangeNotifier
	Provisioning ports.ProvisioningService
	HealthChecks map[string]handlers.Check
	JWTSecret    string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title        Crew Scheduler API
// @version      1.0
// @description  Shift assignment, crew notifications and worker provisioning.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	assignmentHandler := handler.NewAssignmentHandler(deps.Notifier)
	notificationHandler := handler.NewNotificationHandler(deps.Notifier)
	workerHandler := handler.NewWorkerHandler(deps.Provisioning)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/password", authHandler.SetPassword)

	infrahttp.RegisterHealth(e, deps.HealthChecks)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Admin routes ---
	// Attached per route so unknown paths still answer 404, not 401.
	admin := []echo.MiddlewareFunc{middleware.Auth(deps.JWTSecret), middleware.RBAC(domain.RoleAdmin)}

	e.POST("/shifts/:id/assign", assignmentHandler.Assign, admin...)
	e.DELETE("/shifts/:id/assign", assignmentHandler.Unassign, admin...)

	e.POST("/notifications/shift-assigned", notificationHandler.ShiftAssigned, admin...)
	e.POST("/notifications/shift-updated", notificationHandler.ShiftUpdated, admin...)

	e.POST("/workers", workerHandler.Create, admin...)

	return e
}
