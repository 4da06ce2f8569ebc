package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
	"github.com/stagecrew/crew-scheduler/internal/core/ports"
	"github.com/stagecrew/crew-scheduler/internal/infrastructure/metrics"
)

// SagaState is a step of the identity + profile provisioning saga.
type SagaState int

const (
	StateNotStarted SagaState = iota
	// StateIdentityCreated means the identity step is done: either a new
	// identity was created or an existing one is being reactivated.
	StateIdentityCreated
	StateProfileCommitted
	StateRolledBack
	StateFailed
)

func (s SagaState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateIdentityCreated:
		return "identity_created"
	case StateProfileCommitted:
		return "profile_committed"
	case StateRolledBack:
		return "rolled_back"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("saga_state(%d)", int(s))
}

var sagaTransitions = map[SagaState][]SagaState{
	StateNotStarted:      {StateIdentityCreated, StateFailed},
	StateIdentityCreated: {StateProfileCommitted, StateRolledBack, StateFailed},
}

// provisionSaga tracks one provisioning run.
type provisionSaga struct {
	state       SagaState
	identityID  string
	reactivated bool
	history     []SagaState
}

func newProvisionSaga() *provisionSaga {
	return &provisionSaga{state: StateNotStarted, history: []SagaState{StateNotStarted}}
}

func (s *provisionSaga) to(next SagaState) {
	for _, allowed := range sagaTransitions[s.state] {
		if allowed == next {
			s.state = next
			s.history = append(s.history, next)
			return
		}
	}
	panic(fmt.Sprintf("provisioning: illegal saga transition %s -> %s", s.state, next))
}

// ProvisioningCoordinator creates or reactivates a worker identity together
// with its profile, undoing a fresh identity when the profile write fails.
type ProvisioningCoordinator struct {
	identities     ports.IdentityProvider
	profiles       ports.ProfileRepository
	passwords      *PasswordGenerator
	defaultPayRate float64
	redirectURL    string
	log            zerolog.Logger
}

func NewProvisioningCoordinator(
	identities ports.IdentityProvider,
	profiles ports.ProfileRepository,
	passwords *PasswordGenerator,
	defaultPayRate float64,
	redirectURL string,
	log zerolog.Logger,
) *ProvisioningCoordinator {
	if passwords == nil {
		passwords = NewPasswordGenerator(nil)
	}
	return &ProvisioningCoordinator{
		identities:     identities,
		profiles:       profiles,
		passwords:      passwords,
		defaultPayRate: defaultPayRate,
		redirectURL:    redirectURL,
		log:            log.With().Str("component", "provisioning").Logger(),
	}
}

var _ ports.ProvisioningService = (*ProvisioningCoordinator)(nil)

// Provision runs the saga: identity, then profile, then a best-effort invitation.
func (c *ProvisioningCoordinator) Provision(ctx context.Context, in ports.ProvisionInput) (*ports.ProvisionResult, error) {
	res, _, err := c.provision(ctx, in)
	return res, err
}

func (c *ProvisioningCoordinator) provision(ctx context.Context, in ports.ProvisionInput) (*ports.ProvisionResult, *provisionSaga, error) {
	saga := newProvisionSaga()

	email := domain.NormalizeEmail(in.Email)
	profile, err := c.buildProfile(email, in.Attributes)
	if err != nil {
		return nil, saga, err
	}

	// 1. Identity: reactivate or create.
	if err := c.resolveIdentity(ctx, saga, email, in); err != nil {
		saga.to(StateFailed)
		metrics.ProvisioningTotal.WithLabelValues("identity_failed").Inc()
		return nil, saga, err
	}
	profile.ID = saga.identityID

	// 2. Profile, with compensation for a fresh identity.
	if err := c.profiles.Upsert(ctx, profile); err != nil {
		return nil, saga, c.compensate(ctx, saga, email, err)
	}
	saga.to(StateProfileCommitted)

	// 3. Invitation, best effort.
	issued := false
	if in.SendInvite && in.Password == "" {
		redirect := in.RedirectURL
		if redirect == "" {
			redirect = c.redirectURL
		}
		issued = c.deliverInvitation(ctx, email, redirect)
	}

	outcome := "created"
	if saga.reactivated {
		outcome = "reactivated"
	}
	metrics.ProvisioningTotal.WithLabelValues(outcome).Inc()
	c.log.Info().
		Str("worker_id", saga.identityID).
		Bool("reactivated", saga.reactivated).
		Bool("invite_sent", issued).
		Msg("worker provisioned")

	return &ports.ProvisionResult{
		WorkerID:         saga.identityID,
		WasReactivated:   saga.reactivated,
		CredentialIssued: issued,
		Profile:          *profile,
	}, saga, nil
}

func (c *ProvisioningCoordinator) resolveIdentity(ctx context.Context, saga *provisionSaga, email string, in ports.ProvisionInput) error {
	id, err := c.identities.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// An explicit password replaces the old credential; failing to set
		// it fails the call rather than leaving a password the admin did not choose.
		if in.Password != "" {
			meta := map[string]any{domain.MetaMustChangePassword: false}
			if err := c.identities.UpdateCredential(ctx, id, in.Password, meta); err != nil {
				c.log.Error().Err(err).Str("worker_id", id).Msg("setting credential on reactivation failed")
				return fmt.Errorf("%w: set credential: %w", domain.ErrIdentityCreationFailed, err)
			}
		}
		saga.identityID = id
		saga.reactivated = true
		saga.to(StateIdentityCreated)
		if in.Password == "" && in.SendInvite {
			c.rotateCredential(ctx, id)
		}
		return nil

	case errors.Is(err, domain.ErrIdentityNotFound):
		password := in.Password
		if password == "" {
			password = c.generatePassword()
		}
		meta := map[string]any{domain.MetaMustChangePassword: in.Password == ""}
		id, err := c.identities.CreateIdentity(ctx, email, password, true, meta)
		if err != nil {
			c.log.Error().Err(err).Str("email", email).Msg("identity creation failed")
			return fmt.Errorf("%w: %w", domain.ErrIdentityCreationFailed, err)
		}
		saga.identityID = id
		saga.to(StateIdentityCreated)
		return nil

	default:
		c.log.Error().Err(err).Str("email", email).Msg("identity lookup failed")
		return fmt.Errorf("%w: lookup: %w", domain.ErrIdentityCreationFailed, err)
	}
}

// rotateCredential gives a reactivated identity a fresh temporary password.
// A failure leaves the old credential in place; the reset link still works.
func (c *ProvisioningCoordinator) rotateCredential(ctx context.Context, id string) {
	meta := map[string]any{domain.MetaMustChangePassword: true}
	if err := c.identities.UpdateCredential(ctx, id, c.generatePassword(), meta); err != nil {
		c.log.Warn().Err(err).Str("worker_id", id).Msg("credential rotation on reactivation failed")
	}
}

func (c *ProvisioningCoordinator) compensate(ctx context.Context, saga *provisionSaga, email string, cause error) error {
	if saga.reactivated {
		saga.to(StateFailed)
		metrics.ProvisioningTotal.WithLabelValues("profile_failed").Inc()
		c.log.Error().Err(cause).Str("worker_id", saga.identityID).Msg("profile write failed for reactivated identity")
		return fmt.Errorf("%w: %w", domain.ErrProfileCreationFailed, cause)
	}

	// The identity was created by this call and must not outlive it.
	// An identity that is already gone counts as rolled back.
	err := c.identities.DeleteIdentity(context.WithoutCancel(ctx), saga.identityID)
	if err != nil && !errors.Is(err, domain.ErrIdentityNotFound) {
		saga.to(StateFailed)
		metrics.ProvisioningTotal.WithLabelValues("rollback_failed").Inc()
		c.log.Error().
			AnErr("profile_error", cause).
			AnErr("rollback_error", err).
			Str("worker_id", saga.identityID).
			Str("email", email).
			Msg("identity rollback failed, manual cleanup required")
		return &domain.RollbackError{IdentityID: saga.identityID, Original: cause, Rollback: err}
	}

	saga.to(StateRolledBack)
	metrics.ProvisioningTotal.WithLabelValues("rolled_back").Inc()
	c.log.Warn().Err(cause).Str("email", email).Msg("profile write failed, identity rolled back")
	return fmt.Errorf("%w: %w", domain.ErrProfileCreationFailed, cause)
}

func (c *ProvisioningCoordinator) deliverInvitation(ctx context.Context, email, redirect string) bool {
	err := c.identities.SendInvitation(ctx, email, redirect)
	if err == nil {
		return true
	}
	c.log.Warn().Err(err).Str("email", email).Msg("invitation failed, falling back to credential reset")

	if err := c.identities.SendCredentialReset(ctx, email, redirect); err != nil {
		c.log.Warn().Err(err).Str("email", email).Msg("credential reset delivery failed, no credential issued")
		return false
	}
	return true
}

func (c *ProvisioningCoordinator) generatePassword() string {
	pw, degraded := c.passwords.Generate()
	if degraded {
		metrics.PasswordDegradedTotal.Inc()
		c.log.Warn().Msg("secure random source unavailable, generated password is weak")
	}
	return pw
}

func (c *ProvisioningCoordinator) buildProfile(email string, attrs ports.WorkerAttributes) (*domain.Profile, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidRequest)
	}
	name := strings.TrimSpace(attrs.FullName)
	if name == "" {
		return nil, fmt.Errorf("%w: full_name is required", domain.ErrInvalidRequest)
	}

	role := attrs.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if role != domain.RoleEmployee && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidRequest, role)
	}

	pay := c.defaultPayRate
	if attrs.PayRate != nil {
		if *attrs.PayRate < 0 {
			return nil, fmt.Errorf("%w: pay_rate must not be negative", domain.ErrInvalidRequest)
		}
		pay = *attrs.PayRate
	}

	phone := strings.TrimSpace(attrs.Phone)
	if normalized := domain.NormalizePhone(phone); normalized != "" {
		phone = normalized
	}

	return &domain.Profile{
		FullName: name,
		Phone:    phone,
		Role:     role,
		PayRate:  pay,
		IsActive: true,
		SMSOptIn: attrs.SMSOptIn,
	}, nil
}
