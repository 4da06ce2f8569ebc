package ports

import "context"

// IdentityProvider is the external identity collaborator that owns e-mail
// addresses and credentials.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password string, confirmed bool, metadata map[string]any) (string, error)
	// FindByEmail returns domain.ErrIdentityNotFound when no identity owns the address.
	FindByEmail(ctx context.Context, email string) (string, error)
	DeleteIdentity(ctx context.Context, id string) error
	UpdateCredential(ctx context.Context, id, password string, metadata map[string]any) error
	SendInvitation(ctx context.Context, email, redirectURL string) error
	SendCredentialReset(ctx context.Context, email, redirectURL string) error
}
