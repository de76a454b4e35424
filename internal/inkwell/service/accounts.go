package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store"
	"github.com/aussiebroadwan/inkwell/pkg/idx"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

type AccountService struct {
	Store     store.Store
	Passwords PasswordHasher
	Clock     Clock

	dummyOnce sync.Once
	dummyHash string
}

// Register creates a member account. New accounts start Unregistered.
func (s *AccountService) Register(ctx context.Context, data domain.NewAccountData) (domain.Account, error) {
	data.Role = domain.RoleMember
	return s.create(ctx, s.Store.Accounts(), data)
}

// CreateAccount creates an account with any role on behalf of a master.
func (s *AccountService) CreateAccount(ctx context.Context, actingID string, data domain.NewAccountData) (domain.Account, error) {
	if !data.Role.Valid() {
		return domain.Account{}, ErrInvalidRole
	}

	acting, err := s.GetAccount(ctx, actingID)
	if errors.Is(err, ErrAccountNotFound) {
		return domain.Account{}, ErrForbidden
	}
	if err != nil {
		return domain.Account{}, err
	}
	if !acting.Role.AtLeast(domain.RoleMaster) {
		return domain.Account{}, ErrForbidden
	}

	acct, err := s.create(ctx, s.Store.Accounts(), data)
	if err != nil {
		return domain.Account{}, err
	}

	slogx.FromContext(ctx).Info("account created",
		slog.String("acting_id", actingID),
		slog.String("target_id", acct.ID),
		slog.String("role", acct.Role.String()),
	)
	return acct, nil
}

// Authenticate checks email and password. Unknown emails and wrong
// passwords both return ErrInvalidCredentials after the same amount of
// hashing work.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		_ = s.Passwords.Verify(password, s.dummy())
		return domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to load account: %w", err)
	}

	if err := s.Passwords.Verify(password, acct.PasswordHash); err != nil {
		slogx.FromContext(ctx).Warn("password mismatch", slog.String("account_id", acct.ID))
		return domain.Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to load account: %w", err)
	}
	return acct, nil
}

// RoleOf returns the persisted role of an account.
func (s *AccountService) RoleOf(ctx context.Context, id string) (string, error) {
	acct, err := s.GetAccount(ctx, id)
	if err != nil {
		return "", err
	}
	return acct.Role.String(), nil
}

// ListAdmins returns admins and masters, newest first.
func (s *AccountService) ListAdmins(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccountsByRoles(ctx, domain.RoleAdmin, domain.RoleMaster)
}

// ListMembers returns members, newest first.
func (s *AccountService) ListMembers(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccountsByRoles(ctx, domain.RoleMember)
}

func (s *AccountService) create(ctx context.Context, repo store.Accounts, data domain.NewAccountData) (domain.Account, error) {
	hash, err := s.Passwords.Hash(data.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Clock.now()
	acct := domain.Account{
		ID:           idx.NewAt(now).String(),
		Email:        normalizeEmail(data.Email),
		Name:         strings.TrimSpace(data.Name),
		PasswordHash: hash,
		Role:         data.Role,
		MFA:          domain.Unregistered{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.CreateAccount(ctx, acct); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		return domain.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return acct, nil
}

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Passwords.Hash("inkwell-timing-equaliser")
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
