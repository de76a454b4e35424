package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

var (
	ErrBootstrapDisabled     = errors.New("bootstrap not enabled")
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first master account on an empty system.
type BootstrapService struct {
	Store    store.Store
	Accounts *AccountService
	Token    string // Pre-configured bootstrap token; empty disables bootstrap
}

func (s *BootstrapService) Enabled() bool { return s.Token != "" }

// IsBootstrapped reports whether any account exists yet.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates a master account if token matches and no account exists.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, data domain.NewAccountData) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	if !s.Enabled() {
		return domain.Account{}, ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Account{}, ErrBootstrapUnauthorized
	}

	if done, err := s.IsBootstrapped(ctx); err == nil && done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Account{}, ErrBootstrapAlready
	}

	data.Role = domain.RoleMaster

	var acct domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Accounts().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}

		acct, err = s.Accounts.create(ctx, tx.Accounts(), data)
		return err
	})
	if errors.Is(err, ErrBootstrapAlready) {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Account{}, err
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("bootstrap failed: %w", err)
	}

	l.Info("bootstrapped first master account", slog.String("account_id", acct.ID))
	return acct, nil
}
