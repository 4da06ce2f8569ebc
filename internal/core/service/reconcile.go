package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/metrics"
)

// AssignmentReconciler diffs a requested assignee set against the stored one
// and persists the union.
type AssignmentReconciler struct {
	repo ports.AssignmentRepository
	log  zerolog.Logger
}

func NewAssignmentReconciler(repo ports.AssignmentRepository, log zerolog.Logger) *AssignmentReconciler {
	return &AssignmentReconciler{
		repo: repo,
		log:  log.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile links every requested worker to the shift and returns the ones
// that were not linked before this call. Re-submitting an assigned worker is a
// no-op and never shows up in the result.
func (r *AssignmentReconciler) Reconcile(ctx context.Context, shiftID string, requested []string) ([]string, error) {
	ids, err := normalizeIDs(shiftID, requested)
	if err != nil {
		return nil, err
	}

	current, err := r.repo.ListAssignees(ctx, shiftID)
	if err != nil {
		return nil, storageError("reconcile: load assignees", err)
	}

	added := AddedWorkers(ids, current)

	inserted, err := r.repo.UpsertAssignments(ctx, shiftID, Union(ids, current))
	if err != nil {
		return nil, storageError("reconcile: upsert assignments", err)
	}

	// A racing reconcile may have inserted some of our "added" workers between
	// our read and our write; only the rows this statement inserted count.
	if inserted != nil {
		added = Intersect(added, inserted)
	}

	metrics.AssignmentsAddedTotal.Add(float64(len(added)))
	r.log.Info().
		Str("shift_id", shiftID).
		Int("requested", len(ids)).
		Int("added", len(added)).
		Msg("assignments reconciled")

	return added, nil
}

// Unassign removes the workers from the shift. It never notifies anyone.
func (r *AssignmentReconciler) Unassign(ctx context.Context, shiftID string, workerIDs []string) error {
	ids, err := normalizeIDs(shiftID, workerIDs)
	if err != nil {
		return err
	}
	if err := r.repo.DeleteAssignments(ctx, shiftID, ids); err != nil {
		return storageError("unassign", err)
	}
	r.log.Info().Str("shift_id", shiftID).Int("removed", len(ids)).Msg("workers unassigned")
	return nil
}

// Assignees returns the workers currently linked to the shift.
func (r *AssignmentReconciler) Assignees(ctx context.Context, shiftID string) ([]string, error) {
	current, err := r.repo.ListAssignees(ctx, shiftID)
	if err != nil {
		return nil, storageError("load assignees", err)
	}
	return current, nil
}

// storageError tags err as a storage failure unless the store already
// classified it as a caller mistake (malformed or unknown ids).
func storageError(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidRequest) ||
		errors.Is(err, domain.ErrWorkerNotFound) ||
		errors.Is(err, domain.ErrShiftNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// normalizeIDs trims and dedupes ids, preserving first-seen order.
func normalizeIDs(shiftID string, ids []string) ([]string, error) {
	if strings.TrimSpace(shiftID) == "" {
		return nil, fmt.Errorf("%w: shift id is required", domain.ErrInvalidRequest)
	}
	out := Dedupe(ids)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one worker id is required", domain.ErrInvalidRequest)
	}
	return out, nil
}

// Dedupe returns the non-empty ids of in with duplicates removed, in
// first-seen order.
func Dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AddedWorkers returns requested − current.
func AddedWorkers(requested, current []string) []string {
	have := toSet(current)
	added := make([]string, 0, len(requested))
	for _, id := range Dedupe(requested) {
		if _, ok := have[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}

// Union returns a ∪ b, a's order first.
func Union(a, b []string) []string {
	return Dedupe(append(append(make([]string, 0, len(a)+len(b)), a...), b...))
}

// Intersect returns the elements of a that are also in b, in a's order.
func Intersect(a, b []string) []string {
	in := toSet(b)
	out := make([]string, 0, len(a))
	for _, id := range a {
		if _, ok := in[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
