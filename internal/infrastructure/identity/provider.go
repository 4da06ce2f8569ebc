// Package identity is the self-hosted identity collaborator: credentials live
// in Mongo, one-time links are Redis tokens, and the links go out by e-mail.
package identity

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

// Store is the identity persistence the provider builds on.
type Store interface {
	CreateIdentity(ctx context.Context, email, password string, confirmed bool, metadata map[string]any) (string, error)
	FindByEmail(ctx context.Context, email string) (string, error)
	DeleteIdentity(ctx context.Context, id string) error
	UpdateCredential(ctx context.Context, id, password string, metadata map[string]any) error
}

// Mailer delivers a plain-text e-mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Provider implements ports.IdentityProvider. A nil mailer makes the
// invitation and reset operations fail with ErrServiceUnavailable.
type Provider struct {
	Store
	tokens ports.TokenStore
	mailer Mailer
	log    zerolog.Logger
}

func NewProvider(store Store, tokens ports.TokenStore, mailer Mailer, log zerolog.Logger) *Provider {
	return &Provider{
		Store:  store,
		tokens: tokens,
		mailer: mailer,
		log:    log.With().Str("component", "identity").Logger(),
	}
}

var _ ports.IdentityProvider = (*Provider)(nil)

func (p *Provider) SendInvitation(ctx context.Context, email, redirectURL string) error {
	return p.sendLink(ctx, ports.TokenInvite, email, redirectURL,
		"You're invited to the crew schedule",
		"You have been added to the crew schedule. Choose a password to sign in:\n\n%s\n")
}

func (p *Provider) SendCredentialReset(ctx context.Context, email, redirectURL string) error {
	return p.sendLink(ctx, ports.TokenReset, email, redirectURL,
		"Set your crew schedule password",
		"Use the link below to set a new password:\n\n%s\n")
}

func (p *Provider) sendLink(ctx context.Context, purpose, email, redirectURL, subject, bodyFormat string) error {
	if p.mailer == nil {
		return fmt.Errorf("send %s: mailer not configured: %w", purpose, domain.ErrServiceUnavailable)
	}

	email = domain.NormalizeEmail(email)
	id, err := p.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("send %s: %w", purpose, err)
	}

	token, err := p.tokens.Issue(ctx, purpose, id)
	if err != nil {
		return fmt.Errorf("send %s: %w", purpose, err)
	}

	link, err := BuildLink(redirectURL, purpose, token)
	if err != nil {
		return fmt.Errorf("send %s: %w", purpose, err)
	}

	if err := p.mailer.Send(ctx, email, subject, fmt.Sprintf(bodyFormat, link)); err != nil {
		return fmt.Errorf("send %s: %w", purpose, err)
	}
	p.log.Info().Str("worker_id", id).Str("purpose", purpose).Msg("credential link sent")
	return nil
}

// BuildLink appends type and token query parameters to redirectURL, keeping
// any query it already carries.
func BuildLink(redirectURL, purpose, token string) (string, error) {
	u, err := url.Parse(redirectURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid redirect url %q", domain.ErrInvalidRequest, redirectURL)
	}
	q := u.Query()
	q.Set("type", purpose)
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
