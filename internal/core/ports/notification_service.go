package ports

import (
	"context"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// NotificationState summarises what happened to the notifications of an
// assign call.
type NotificationState string

const (
	NotificationsSent        NotificationState = "sent"
	NotificationsNone        NotificationState = "none"
	NotificationsUnavailable NotificationState = "unavailable"
)

// AssignResult is returned by ChangeNotifier.Assign. The assignment itself is
// committed whenever a non-nil result is returned.
type AssignResult struct {
	Added         []string
	Outcomes      []domain.DispatchOutcome
	Sent          int
	Notifications NotificationState
}

// NotifyResult is returned by the notification-only flows.
type NotifyResult struct {
	Outcomes  []domain.DispatchOutcome
	Sent      int
	Failed    int
	Duplicate bool
}

// ChangeNotifier composes reconciliation, recipient resolution and dispatch.
type ChangeNotifier interface {
	// Assign reconciles the shift's assignees and notifies the newly added ones.
	Assign(ctx context.Context, shiftID string, workerIDs []string) (*AssignResult, error)
	// Unassign removes workers from the shift without notifying anyone.
	Unassign(ctx context.Context, shiftID string, workerIDs []string) error
	// NotifyAssigned notifies the given workers that they were assigned.
	NotifyAssigned(ctx context.Context, shiftID string, workerIDs []string) (*NotifyResult, error)
	// NotifyUpdated notifies every current assignee about the changed fields.
	NotifyUpdated(ctx context.Context, shiftID string, changes domain.ShiftChanges) (*NotifyResult, error)
}
