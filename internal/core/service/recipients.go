package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

// RecipientResolver turns worker ids into deliverable recipients.
type RecipientResolver struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewRecipientResolver(profiles ports.ProfileRepository, log zerolog.Logger) *RecipientResolver {
	return &RecipientResolver{
		profiles: profiles,
		log:      log.With().Str("component", "recipients").Logger(),
	}
}

// Resolve loads contact and opt-in state for the workers and keeps only those
// with a usable phone number who opted in. Unknown ids are skipped.
func (r *RecipientResolver) Resolve(ctx context.Context, workerIDs []string) ([]domain.Recipient, error) {
	ids := Dedupe(workerIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	profiles, err := r.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients: %w: %w", domain.ErrStorage, err)
	}

	recipients := make([]domain.Recipient, 0, len(profiles))
	for _, p := range profiles {
		phone := domain.NormalizePhone(p.Phone)
		if phone == "" || !p.SMSOptIn {
			r.log.Debug().
				Str("worker_id", p.ID).
				Bool("has_phone", phone != "").
				Bool("opted_in", p.SMSOptIn).
				Msg("worker not deliverable, skipped")
			continue
		}
		recipients = append(recipients, domain.Recipient{
			ID:          p.ID,
			DisplayName: p.FullName,
			Phone:       phone,
			OptedIn:     true,
		})
	}
	return recipients, nil
}
