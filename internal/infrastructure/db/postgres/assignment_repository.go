package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) ListAssignees(ctx context.Context, shiftID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT employee_id FROM schedule_assignments
		 WHERE schedule_shift_id = $1 ORDER BY created_at, employee_id`,
		shiftID,
	)
	if err != nil {
		return nil, assignmentError("list assignees", err)
	}
	return scanIDs(rows)
}

// UpsertAssignments writes every pair idempotently and returns the employee
// ids whose rows this statement created.
func (r *AssignmentRepository) UpsertAssignments(ctx context.Context, shiftID string, workerIDs []string) ([]string, error) {
	if len(workerIDs) == 0 {
		return []string{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`INSERT INTO schedule_assignments (schedule_shift_id, employee_id)
		 SELECT $1, unnest($2::uuid[])
		 ON CONFLICT (schedule_shift_id, employee_id) DO NOTHING
		 RETURNING employee_id`,
		shiftID, pq.Array(workerIDs),
	)
	if err != nil {
		return nil, assignmentError("upsert assignments", err)
	}
	return scanIDs(rows)
}

func (r *AssignmentRepository) DeleteAssignments(ctx context.Context, shiftID string, workerIDs []string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM schedule_assignments
		 WHERE schedule_shift_id = $1 AND employee_id = ANY($2::uuid[])`,
		shiftID, pq.Array(workerIDs),
	)
	if err != nil {
		return assignmentError("delete assignments", err)
	}
	return nil
}

func scanIDs(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}
	return ids, nil
}
