package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

const profileColumns = `id, full_name, phone, role, pay_rate, is_active, sms_opt_in`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1::uuid[])`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer rows.Close()

	// Keep the caller's order; the query returns rows in storage order.
	byID := make(map[string]domain.Profile, len(ids))
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	out := make([]domain.Profile, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWorkerNotFound
	}
	return p, err
}

// Upsert inserts the profile or overwrites every attribute of an existing
// one. Reactivation relies on is_active being written unconditionally.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, full_name, phone, role, pay_rate, is_active, sms_opt_in)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     full_name  = EXCLUDED.full_name,
		     phone      = EXCLUDED.phone,
		     role       = EXCLUDED.role,
		     pay_rate   = EXCLUDED.pay_rate,
		     is_active  = EXCLUDED.is_active,
		     sms_opt_in = EXCLUDED.sms_opt_in,
		     updated_at = NOW()`,
		p.ID, p.FullName, nullString(p.Phone), p.Role, p.PayRate, p.IsActive, p.SMSOptIn,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*domain.Profile, error) {
	var (
		p     domain.Profile
		phone sql.NullString
	)
	if err := s.Scan(&p.ID, &p.FullName, &phone, &p.Role, &p.PayRate, &p.IsActive, &p.SMSOptIn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.Phone = phone.String
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
