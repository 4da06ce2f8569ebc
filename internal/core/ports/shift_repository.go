package ports

import (
	"context"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// ShiftRepository reads shifts from the relational store.
type ShiftRepository interface {
	// FindByID returns domain.ErrShiftNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Shift, error)
}
