package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrShiftNotFound):
		return http.StatusNotFound, "shift not found"
	case errors.Is(err, domain.ErrWorkerNotFound):
		return http.StatusNotFound, "worker not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrIdentityExists):
		return http.StatusConflict, "identity already exists"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "notification service unavailable"
	case errors.Is(err, domain.ErrRollbackFailed):
		// Checked before the profile failure it wraps. Operators need to
		// find and remove the orphaned identity.
		var rb *domain.RollbackError
		id := ""
		if errors.As(err, &rb) {
			id = rb.IdentityID
		}
		log.Error().Err(err).Str("worker_id", id).Str("path", c.Path()).Msg("orphaned identity after failed rollback")
		return http.StatusInternalServerError, "worker could not be created and cleanup failed; contact an administrator"
	case errors.Is(err, domain.ErrIdentityCreationFailed):
		log.Error().Err(err).Str("path", c.Path()).Msg("identity creation failed")
		return http.StatusBadGateway, "identity creation failed"
	case errors.Is(err, domain.ErrProfileCreationFailed):
		log.Error().Err(err).Str("path", c.Path()).Msg("profile creation failed")
		return http.StatusInternalServerError, "profile creation failed"
	}

	// Unexpected error (storage included): log the real cause, return a
	// generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
