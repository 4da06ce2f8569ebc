package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*domain.Shift, error) {
	var (
		s                                   domain.Shift
		end                                 sql.NullTime
		location, address, notes, createdBy sql.NullString
		jobType, status                     string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, start_time, end_time, location_name, address, job_type, notes, status, created_by
		 FROM schedule_shifts WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.StartTime, &end, &location, &address, &jobType, &notes, &status, &createdBy)

	// A malformed id cannot match any row.
	if errors.Is(err, sql.ErrNoRows) || pqCode(err) == codeInvalidText {
		return nil, domain.ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find shift: %w", err)
	}

	if end.Valid {
		s.EndTime = &end.Time
	}
	s.LocationName = location.String
	s.Address = address.String
	s.Notes = notes.String
	s.CreatedBy = createdBy.String
	s.JobType = domain.JobType(jobType)
	s.Status = domain.ShiftStatus(status)
	return &s, nil
}
