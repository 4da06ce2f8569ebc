package domain

import (
	"errors"
	"fmt"
)

// Engine error taxonomy.
var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrStorage                = errors.New("storage error")
	ErrServiceUnavailable     = errors.New("notification service unavailable")
	ErrIdentityCreationFailed = errors.New("identity creation failed")
	ErrProfileCreationFailed  = errors.New("profile creation failed")
	ErrRollbackFailed         = errors.New("identity rollback failed")
)

// Identity and authentication errors.
var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
)

// RollbackError is returned when a profile write failed after a brand-new
// identity was created and the compensating delete of that identity failed
// too. The identity now exists without a profile and needs manual cleanup.
type RollbackError struct {
	IdentityID string
	Original   error
	Rollback   error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("%v: identity %s: profile write: %v; delete: %v",
		ErrRollbackFailed, e.IdentityID, e.Original, e.Rollback)
}

func (e *RollbackError) Is(target error) bool {
	return target == ErrRollbackFailed
}

func (e *RollbackError) Unwrap() []error {
	return []error{e.Original, e.Rollback}
}
