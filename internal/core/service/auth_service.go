package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
)

const minPasswordLength = 8

// AuthService signs staff in against the identity store and completes
// invitation and reset links.
type AuthService struct {
	creds     ports.CredentialStore
	profiles  ports.ProfileRepository
	tokens    ports.TokenStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(creds ports.CredentialStore, profiles ports.ProfileRepository, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{creds: creds, profiles: profiles, tokens: tokens, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.creds.FindIdentityByEmail(ctx, email)
	if errors.Is(err, domain.ErrIdentityNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !s.creds.VerifyPassword(identity, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	profile, err := s.profiles.FindByID(ctx, identity.ID)
	if errors.Is(err, domain.ErrWorkerNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !profile.IsActive {
		return "", nil, domain.ErrForbidden
	}

	token, err := s.generateToken(identity, profile)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// SetPassword consumes a one-time invite or reset token and stores the new
// credential.
func (s *AuthService) SetPassword(ctx context.Context, purpose, token, password string) error {
	if purpose != ports.TokenInvite && purpose != ports.TokenReset {
		return fmt.Errorf("%w: unknown token type %q", domain.ErrInvalidRequest, purpose)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidRequest, minPasswordLength)
	}

	id, err := s.tokens.Consume(ctx, purpose, token)
	if err != nil {
		return err
	}

	meta := map[string]any{domain.MetaMustChangePassword: false}
	return s.creds.SetPassword(ctx, id, password, meta)
}

func (s *AuthService) generateToken(identity *domain.Identity, profile *domain.Profile) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"role":  profile.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
