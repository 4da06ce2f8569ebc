package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

// AssignmentHandler handles shift assignment changes.
type AssignmentHandler struct {
	notifier ports.ChangeNotifier
}

func NewAssignmentHandler(notifier ports.ChangeNotifier) *AssignmentHandler {
	return &AssignmentHandler{notifier: notifier}
}

// Assign handles POST /shifts/:id/assign.
//
// The assignment is committed before any notification is attempted; failed
// or skipped notifications never turn the response into an error.
//
// @Summary      Assign workers to a shift
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Shift id"
// @Param        body  body      assignRequest  true  "Workers to assign"
// @Success      200   {object}  assignResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /shifts/{id}/assign [post]
func (h *AssignmentHandler) Assign(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	shiftID, err := shiftIDParam(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.notifier.Assign(c.Request().Context(), shiftID, req.EmployeeIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assignResponse{
		OK:            true,
		Added:         res.Added,
		Sent:          res.Sent,
		Notifications: string(res.Notifications),
		Results:       res.Outcomes,
	})
}

// Unassign handles DELETE /shifts/:id/assign. Nobody is notified.
//
// @Summary      Remove workers from a shift
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Shift id"
// @Param        body  body      assignRequest  true  "Workers to remove"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /shifts/{id}/assign [delete]
func (h *AssignmentHandler) Unassign(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	shiftID, err := shiftIDParam(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.notifier.Unassign(c.Request().Context(), shiftID, req.EmployeeIDs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
