package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Profile is the worker record kept in the relational store. Its ID is the
// identity id issued by the identity collaborator.
type Profile struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone,omitempty"`
	Role     string  `json:"role"`
	PayRate  float64 `json:"pay_rate"`
	IsActive bool    `json:"is_active"`
	SMSOptIn bool    `json:"sms_opt_in"`
}

// Recipient is a worker that can actually receive a notification.
type Recipient struct {
	ID          string
	DisplayName string
	Phone       string
	OptedIn     bool
}

// FirstName returns the first word of the display name, used to greet
// recipients in messages.
func (r Recipient) FirstName() string {
	fields := strings.Fields(r.DisplayName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Identity metadata keys.
const (
	MetaMustChangePassword = "must_change_password"
)

// Identity is an account in the identity store.
type Identity struct {
	ID             string
	Email          string
	PasswordHash   string
	EmailConfirmed bool
	Metadata       map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MustChangePassword reports whether the identity was flagged to rotate
// its credential on next sign-in.
func (i *Identity) MustChangePassword() bool {
	v, _ := i.Metadata[MetaMustChangePassword].(bool)
	return v
}

// NormalizeEmail lower-cases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
