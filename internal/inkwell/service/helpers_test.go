package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store/drivers/sqlite"
	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/totpx"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store      *sqlite.Store
	engine     *totpx.Engine
	vault      *cryptox.Vault
	accounts   *service.AccountService
	enrollment *service.EnrollmentService
	guard      *service.GuardService
	now        time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	vault, err := cryptox.NewVault(cryptox.DeriveVaultKey([]byte("test-vault-key")))
	require.NoError(t, err)

	h := &harness{
		store:  st,
		engine: totpx.NewEngine(),
		vault:  vault,
		now:    time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	clock := service.Clock(func() time.Time { return h.now })

	h.accounts = &service.AccountService{
		Store:     st,
		Passwords: cryptox.PasswordHasher{Pepper: "test-pepper"},
		Clock:     clock,
	}
	h.enrollment = &service.EnrollmentService{
		Store:         st,
		Vault:         vault,
		TOTP:          h.engine,
		Issuer:        "Inkwell",
		RecoveryCodes: totpx.GenerateRecoveryCodes,
		Clock:         clock,
	}
	h.guard = &service.GuardService{Store: st, Clock: clock}
	return h
}

// tick advances the clock so consecutive accounts get distinct creation times.
func (h *harness) tick() { h.now = h.now.Add(time.Second) }

func (h *harness) create(t *testing.T, email string, role domain.Role) domain.Account {
	t.Helper()
	h.tick()

	acct, err := h.accounts.Register(context.Background(), domain.NewAccountData{
		Email:    email,
		Name:     email,
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	if role != domain.RoleMember {
		ok, err := h.store.Accounts().ChangeRoleKeepingMaster(context.Background(), acct.ID, role, h.now)
		require.NoError(t, err)
		require.True(t, ok)
		acct.Role = role
	}
	return acct
}

func (h *harness) load(t *testing.T, id string) domain.Account {
	t.Helper()
	acct, err := h.store.Accounts().GetAccountByID(context.Background(), id)
	require.NoError(t, err)
	return acct
}

func (h *harness) code(t *testing.T, secret string) string {
	t.Helper()
	c, err := h.engine.Code(secret, h.now)
	require.NoError(t, err)
	return c
}
