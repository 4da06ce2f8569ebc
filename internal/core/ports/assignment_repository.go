package ports

import "context"

// AssignmentRepository persists the many-to-many link between shifts and
// workers. At most one row exists per (shift, worker) pair.
type AssignmentRepository interface {
	// ListAssignees returns the ids of every worker currently assigned to the shift.
	ListAssignees(ctx context.Context, shiftID string) ([]string, error)

	// UpsertAssignments writes one row per worker in a single statement,
	// ignoring pairs that already exist. It returns the worker ids whose rows
	// were inserted by this call, or nil when the store cannot tell.
	UpsertAssignments(ctx context.Context, shiftID string, workerIDs []string) ([]string, error)

	// DeleteAssignments removes the given workers from the shift.
	DeleteAssignments(ctx context.Context, shiftID string, workerIDs []string) error
}
