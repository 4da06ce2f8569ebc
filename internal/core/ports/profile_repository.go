package ports

import (
	"context"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// ProfileRepository persists worker profiles.
type ProfileRepository interface {
	// FindByIDs returns the profiles that exist among ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Profile, error)

	// FindByID returns domain.ErrWorkerNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*domain.Profile, error)

	// Upsert creates the profile or overwrites the existing row with the same id.
	Upsert(ctx context.Context, p *domain.Profile) error
}
