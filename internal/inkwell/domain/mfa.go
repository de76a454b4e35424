package domain

import "time"

// MFAState is the enrollment state of an account. It is one of
// Unregistered, PendingConfirmation or Confirmed.
type MFAState interface {
	// Name is the external name of the state.
	Name() string
	isMFAState()
}

// Unregistered accounts have never started enrollment.
type Unregistered struct{}

// PendingConfirmation accounts hold a sealed secret and recovery code set but
// have not yet proven possession of the authenticator.
type PendingConfirmation struct {
	SealedSecret        []byte
	SealedRecoveryCodes []byte
}

// Confirmed accounts completed enrollment at Since. This state is terminal.
type Confirmed struct {
	SealedSecret        []byte
	SealedRecoveryCodes []byte
	Since               time.Time
}

const (
	MFAStateUnregistered = "unregistered"
	MFAStatePending      = "pending_confirmation"
	MFAStateConfirmed    = "confirmed"
)

func (Unregistered) Name() string        { return MFAStateUnregistered }
func (PendingConfirmation) Name() string { return MFAStatePending }
func (Confirmed) Name() string           { return MFAStateConfirmed }

func (Unregistered) isMFAState()        {}
func (PendingConfirmation) isMFAState() {}
func (Confirmed) isMFAState()           {}

// IsConfirmed reports whether s is Confirmed. A nil state counts as
// Unregistered.
func IsConfirmed(s MFAState) bool {
	_, ok := s.(Confirmed)
	return ok
}

// ConfirmedAt returns the confirmation time, or nil if s is not Confirmed.
func ConfirmedAt(s MFAState) *time.Time {
	c, ok := s.(Confirmed)
	if !ok {
		return nil
	}
	t := c.Since
	return &t
}
