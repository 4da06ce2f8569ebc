package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	codeInvalidText      pq.ErrorCode = "22P02"
	codeForeignKey       pq.ErrorCode = "23503"
	shiftForeignKeyConst              = "schedule_assignments_schedule_shift_id_fkey"
)

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// assignmentError maps caller mistakes on the assignment table to domain
// errors. Ids that are not UUIDs are invalid input; ids that reference no
// row are unknown workers or shifts. Anything else is returned wrapped.
func assignmentError(op string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pqErr.Code {
	case codeInvalidText:
		return fmt.Errorf("%s: %w: ids must be UUIDs", op, domain.ErrInvalidRequest)
	case codeForeignKey:
		if pqErr.Constraint == shiftForeignKeyConst {
			return fmt.Errorf("%s: %w", op, domain.ErrShiftNotFound)
		}
		return fmt.Errorf("%s: %w", op, domain.ErrWorkerNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
