package ports

import (
	"context"

	"github.com/stagecrew/crew-scheduler/internal/core/domain"
)

// WorkerAttributes are the profile fields supplied when provisioning a worker.
type WorkerAttributes struct {
	FullName string
	Phone    string
	Role     string
	PayRate  *float64 // nil uses the configured default
	SMSOptIn bool
}

// ProvisionInput carries everything needed to create or reactivate a worker.
type ProvisionInput struct {
	Email      string
	Attributes WorkerAttributes
	// Password is an explicit credential chosen by the admin. When empty a
	// password is generated.
	Password    string
	SendInvite  bool
	RedirectURL string
}

// ProvisionResult is returned after a successful provisioning.
type ProvisionResult struct {
	WorkerID         string
	WasReactivated   bool
	CredentialIssued bool
	Profile          domain.Profile
}

// ProvisioningService creates or reactivates worker accounts.
type ProvisioningService interface {
	Provision(ctx context.Context, in ProvisionInput) (*ProvisionResult, error)
}
