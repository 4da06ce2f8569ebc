package ports

import (
	"context"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// CredentialStore is the part of the identity store the auth service needs.
type CredentialStore interface {
	FindIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error)
	VerifyPassword(identity *domain.Identity, password string) bool
	SetPassword(ctx context.Context, id, password string, metadata map[string]any) error
}

// TokenStore issues and consumes one-time tokens.
type TokenStore interface {
	Issue(ctx context.Context, purpose, identityID string) (string, error)
	Consume(ctx context.Context, purpose, token string) (string, error)
}

// Token purposes.
const (
	TokenInvite = "invite"
	TokenReset  = "reset"
)

// AuthService signs staff in and completes invitation/reset links.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
	SetPassword(ctx context.Context, purpose, token, password string) error
}
