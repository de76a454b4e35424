package service

import "errors"

var (
	// ErrCorruptSecret means a sealed MFA secret or recovery code set could
	// not be opened (tampered, or the vault key changed). The account cannot
	// complete MFA until an operator intervenes; it never degrades to no-MFA.
	ErrCorruptSecret = errors.New("stored MFA secret cannot be opened")

	ErrInvalidCode  = errors.New("invalid TOTP code")
	ErrInvalidState = errors.New("operation not valid in current MFA enrollment state")

	ErrSelfDeletionForbidden    = errors.New("self deletion forbidden")
	ErrLastMasterAdminProtected = errors.New("last master admin protected")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("forbidden")
)

// Refusal is a guard rejection carrying the message shown to the operator.
type Refusal struct {
	Err    error
	Reason string
}

func (r *Refusal) Error() string { return r.Err.Error() + ": " + r.Reason }
func (r *Refusal) Unwrap() error { return r.Err }

// Reasons shown verbatim to the acting account.
const (
	ReasonSelfDeletion      = "You cannot delete your own account."
	ReasonLastMasterDemote  = "Cannot demote the last master admin."
	ReasonLastMasterDeleted = "Cannot delete the last master admin."
)

func refuse(err error, reason string) error {
	return &Refusal{Err: err, Reason: reason}
}

// ReasonFor returns the operator-facing reason for a guard refusal, or "".
func ReasonFor(err error) string {
	var r *Refusal
	if errors.As(err, &r) {
		return r.Reason
	}
	return ""
}
