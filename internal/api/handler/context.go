package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the subject and
// the role must be present, which proves the middleware ran.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	role, _ = c.Get("role").(string)
	userID, _ = c.Get("user_id").(string)
	if role == "" || userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// shiftIDParam returns the :id path parameter. Shift ids are UUIDs; anything
// else is rejected before it reaches the store.
func shiftIDParam(c echo.Context) (string, error) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "shift id must be a UUID")
	}
	return id, nil
}
