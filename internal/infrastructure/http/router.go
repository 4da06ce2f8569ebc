package http

import (
	"github.com/labstack/echo/v4"

	"github.com/stagecrew/crew-scheduler/internal/infrastructure/http/handlers"
)

// RegisterHealth mounts the liveness and readiness probes. They sit outside
// every auth group.
func RegisterHealth(e *echo.Echo, checks map[string]handlers.Check) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
