package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
	"golang.org/x/sync/singleflight"
)

// Vault seals MFA material before it reaches the store.
type Vault interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// TOTP is the subset of the TOTP engine enrollment needs.
type TOTP interface {
	GenerateSecret() (string, error)
	Verify(secret, code string, now time.Time) bool
	ProvisioningURI(issuer, accountLabel, secret string) (string, error)
}

// EnrollmentService drives Unregistered -> PendingConfirmation -> Confirmed.
// It is the only writer of an account's MFA secret and recovery codes.
type EnrollmentService struct {
	Store  store.Store
	Vault  Vault
	TOTP   TOTP
	Issuer string // shown in authenticator apps, e.g. "Inkwell"

	// RecoveryCodes produces a fresh recovery code set.
	RecoveryCodes func() ([]string, error)

	Clock Clock

	flight singleflight.Group
}

// BeginEnrollment issues a secret and recovery codes to an Unregistered
// account and returns them for display. While the account is pending it
// re-displays the stored material instead of generating new material, so
// repeated and concurrent calls all see the first secret. Confirmed accounts
// get ErrInvalidState. A caller whose ctx ends stops waiting, but the
// enrollment it started still completes for everyone else.
func (s *EnrollmentService) BeginEnrollment(ctx context.Context, accountID string) (domain.Enrollment, error) {
	// The shared call must outlive any single caller's cancellation.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(accountID, func() (any, error) {
		return s.beginEnrollment(flightCtx, accountID)
	})

	select {
	case <-ctx.Done():
		return domain.Enrollment{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Enrollment{}, res.Err
		}
		return res.Val.(domain.Enrollment), nil
	}
}

func (s *EnrollmentService) beginEnrollment(ctx context.Context, accountID string) (domain.Enrollment, error) {
	l := slogx.FromContext(ctx).With(slog.String("account_id", accountID))

	acct, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return domain.Enrollment{}, err
	}

	switch st := acct.MFA.(type) {
	case domain.Confirmed:
		return domain.Enrollment{}, ErrInvalidState
	case domain.PendingConfirmation:
		return s.display(acct, st)
	}

	secret, err := s.TOTP.GenerateSecret()
	if err != nil {
		return domain.Enrollment{}, err
	}
	codes, err := s.RecoveryCodes()
	if err != nil {
		return domain.Enrollment{}, err
	}

	sealedSecret, err := s.Vault.Seal([]byte(secret))
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("failed to seal MFA secret: %w", err)
	}
	codesJSON, err := json.Marshal(codes)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("failed to encode recovery codes: %w", err)
	}
	sealedCodes, err := s.Vault.Seal(codesJSON)
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("failed to seal recovery codes: %w", err)
	}

	written, err := s.Store.Accounts().SetPendingMFA(ctx, accountID, sealedSecret, sealedCodes, s.Clock.now())
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	if !written {
		// Another request got there first; show what it stored.
		acct, err = s.loadAccount(ctx, accountID)
		if err != nil {
			return domain.Enrollment{}, err
		}
		st, ok := acct.MFA.(domain.PendingConfirmation)
		if !ok {
			return domain.Enrollment{}, ErrInvalidState
		}
		return s.display(acct, st)
	}

	l.Info("enrollment started")

	uri, err := s.TOTP.ProvisioningURI(s.Issuer, acct.Email, secret)
	if err != nil {
		return domain.Enrollment{}, err
	}
	return domain.Enrollment{
		Secret:          secret,
		ProvisioningURI: uri,
		RecoveryCodes:   codes,
	}, nil
}

// ConfirmEnrollment checks code against the pending secret and, if it
// matches, marks the account Confirmed. A wrong code leaves the state
// untouched and returns ErrInvalidCode.
func (s *EnrollmentService) ConfirmEnrollment(ctx context.Context, accountID, code string) (domain.Account, error) {
	l := slogx.FromContext(ctx).With(slog.String("account_id", accountID))

	acct, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	pending, ok := acct.MFA.(domain.PendingConfirmation)
	if !ok {
		return domain.Account{}, ErrInvalidState
	}

	secret, err := s.open(pending.SealedSecret)
	if err != nil {
		l.Error("cannot open MFA secret", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := s.Clock.now()
	if !s.TOTP.Verify(string(secret), code, now) {
		l.Warn("invalid TOTP code")
		return domain.Account{}, ErrInvalidCode
	}

	written, err := s.Store.Accounts().ConfirmMFA(ctx, accountID, now)
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to confirm MFA: %w", err)
	}
	if !written {
		return domain.Account{}, ErrInvalidState
	}

	l.Info("enrollment confirmed")
	return s.loadAccount(ctx, accountID)
}

// display re-opens the stored material of a pending account.
func (s *EnrollmentService) display(acct domain.Account, st domain.PendingConfirmation) (domain.Enrollment, error) {
	secret, err := s.open(st.SealedSecret)
	if err != nil {
		return domain.Enrollment{}, err
	}
	rawCodes, err := s.open(st.SealedRecoveryCodes)
	if err != nil {
		return domain.Enrollment{}, err
	}

	var codes []string
	if err := json.Unmarshal(rawCodes, &codes); err != nil {
		return domain.Enrollment{}, fmt.Errorf("%w: recovery codes: %v", ErrCorruptSecret, err)
	}

	uri, err := s.TOTP.ProvisioningURI(s.Issuer, acct.Email, string(secret))
	if err != nil {
		return domain.Enrollment{}, fmt.Errorf("%w: %v", ErrCorruptSecret, err)
	}

	return domain.Enrollment{
		Secret:          string(secret),
		ProvisioningURI: uri,
		RecoveryCodes:   codes,
	}, nil
}

func (s *EnrollmentService) open(sealed []byte) ([]byte, error) {
	plain, err := s.Vault.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSecret, err)
	}
	return plain, nil
}

func (s *EnrollmentService) loadAccount(ctx context.Context, id string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to load account: %w", err)
	}
	return acct, nil
}
