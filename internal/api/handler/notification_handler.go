package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

// NotificationHandler exposes the notification-only flows.
type NotificationHandler struct {
	notifier ports.ChangeNotifier
}

func NewNotificationHandler(notifier ports.ChangeNotifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// ShiftAssigned handles POST /notifications/shift-assigned.
//
// @Summary      Notify workers that they were assigned to a shift
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shiftAssignedRequest  true  "Shift and workers"
// @Success      200   {object}  notifyResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  notifyResponse
// @Router       /notifications/shift-assigned [post]
func (h *NotificationHandler) ShiftAssigned(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req shiftAssignedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.notifier.NotifyAssigned(c.Request().Context(), req.ShiftID, req.EmployeeIDs)
	return respondNotify(c, res, err)
}

// ShiftUpdated handles POST /notifications/shift-updated.
//
// @Summary      Notify every assignee that their shift changed
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shiftUpdatedRequest  true  "Shift and changed fields"
// @Success      200   {object}  notifyResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      503   {object}  notifyResponse
// @Router       /notifications/shift-updated [post]
func (h *NotificationHandler) ShiftUpdated(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req shiftUpdatedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changes := make(domain.ShiftChanges, len(req.Changes))
	for field, ch := range req.Changes {
		changes[field] = domain.FieldChange{From: ch.From, To: ch.To}
	}

	res, err := h.notifier.NotifyUpdated(c.Request().Context(), req.ShiftID, changes)
	return respondNotify(c, res, err)
}

// respondNotify renders a notify result. An unconfigured transport is a
// degraded answer with its own body rather than a generic error.
func respondNotify(c echo.Context, res *ports.NotifyResult, err error) error {
	if errors.Is(err, domain.ErrServiceUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, notifyResponse{
			Success: false,
			Sent:    0,
			Error:   "SMS service not configured",
		})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notifyResponse{
		Success:   true,
		Sent:      res.Sent,
		Failed:    res.Failed,
		Duplicate: res.Duplicate,
		Results:   res.Outcomes,
	})
}
