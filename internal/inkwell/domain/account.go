package domain

import "time"

type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // argon2 encoded
	Role         Role
	MFA          MFAState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccountData is the input for creating an account. Role is decided by
// the caller's path: registration always yields members.
type NewAccountData struct {
	Email    string
	Name     string
	Password string
	Role     Role
}

// Enrollment is what BeginEnrollment hands back for display. The plaintext
// recovery codes never leave this struct except in the response to the
// account owner.
type Enrollment struct {
	Secret          string
	ProvisioningURI string
	RecoveryCodes   []string
}
