package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/totpx"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestBeginEnrollmentStoresSealedMaterial(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	enr, err := h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, enr.Secret, 32)
	require.Contains(t, enr.ProvisioningURI, "otpauth://totp/")
	require.Contains(t, enr.ProvisioningURI, "issuer=Inkwell")
	require.Len(t, enr.RecoveryCodes, totpx.RecoveryCodeCount)

	pending, ok := h.load(t, acct.ID).MFA.(domain.PendingConfirmation)
	require.True(t, ok)
	require.NotContains(t, string(pending.SealedSecret), enr.Secret)

	plain, err := h.vault.Open(pending.SealedSecret)
	require.NoError(t, err)
	require.Equal(t, enr.Secret, string(plain))
}

func TestBeginEnrollmentRedisplaysPendingMaterial(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	first, err := h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.NoError(t, err)
	second, err := h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.NoError(t, err)

	require.Equal(t, first.Secret, second.Secret)
	require.Equal(t, first.RecoveryCodes, second.RecoveryCodes)
	require.Equal(t, first.ProvisioningURI, second.ProvisioningURI)
}

func TestBeginEnrollmentConcurrentCallsShareOneSecret(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	const callers = 8
	var (
		mu      sync.Mutex
		secrets = map[string]struct{}{}
	)

	var g errgroup.Group
	for range callers {
		g.Go(func() error {
			enr, err := h.enrollment.BeginEnrollment(ctx, acct.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			secrets[enr.Secret] = struct{}{}
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Len(t, secrets, 1)

	pending, ok := h.load(t, acct.ID).MFA.(domain.PendingConfirmation)
	require.True(t, ok)
	plain, err := h.vault.Open(pending.SealedSecret)
	require.NoError(t, err)
	for s := range secrets {
		require.Equal(t, s, string(plain))
	}
}

func TestBeginEnrollmentSurvivesCancelledLeader(t *testing.T) {
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	h.enrollment.RecoveryCodes = func() ([]string, error) {
		once.Do(func() { close(started) })
		<-release
		return totpx.GenerateRecoveryCodes()
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := h.enrollment.BeginEnrollment(leaderCtx, acct.ID)
		leaderErr <- err
	}()
	<-started

	type result struct {
		enr domain.Enrollment
		err error
	}
	follower := make(chan result, 1)
	go func() {
		enr, err := h.enrollment.BeginEnrollment(context.Background(), acct.ID)
		follower <- result{enr, err}
	}()

	cancel()
	require.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	res := <-follower
	require.NoError(t, res.err)

	pending, ok := h.load(t, acct.ID).MFA.(domain.PendingConfirmation)
	require.True(t, ok)
	plain, err := h.vault.Open(pending.SealedSecret)
	require.NoError(t, err)
	require.Equal(t, string(plain), res.enr.Secret)
}

func TestConfirmEnrollment(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	enr, err := h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.NoError(t, err)

	_, err = h.enrollment.ConfirmEnrollment(ctx, acct.ID, "not-a-code")
	require.ErrorIs(t, err, service.ErrInvalidCode)
	_, stillPending := h.load(t, acct.ID).MFA.(domain.PendingConfirmation)
	require.True(t, stillPending, "a wrong code must not change state")

	confirmed, err := h.enrollment.ConfirmEnrollment(ctx, acct.ID, h.code(t, enr.Secret))
	require.NoError(t, err)
	require.True(t, domain.IsConfirmed(confirmed.MFA))
	require.True(t, h.now.Equal(*domain.ConfirmedAt(confirmed.MFA)))

	// Confirmed accounts cannot re-enroll or confirm again.
	_, err = h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.ErrorIs(t, err, service.ErrInvalidState)
	_, err = h.enrollment.ConfirmEnrollment(ctx, acct.ID, h.code(t, enr.Secret))
	require.ErrorIs(t, err, service.ErrInvalidState)

	// The stored secret is unchanged by the rejected attempts.
	st := h.load(t, acct.ID).MFA.(domain.Confirmed)
	plain, err := h.vault.Open(st.SealedSecret)
	require.NoError(t, err)
	require.Equal(t, enr.Secret, string(plain))
}

func TestConfirmEnrollmentRequiresPendingState(t *testing.T) {
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	_, err := h.enrollment.ConfirmEnrollment(context.Background(), acct.ID, "123456")
	require.ErrorIs(t, err, service.ErrInvalidState)
	require.Equal(t, domain.Unregistered{}, h.load(t, acct.ID).MFA)
}

func TestEnrollmentUnknownAccount(t *testing.T) {
	h := newHarness(t)

	_, err := h.enrollment.BeginEnrollment(context.Background(), "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.ErrorIs(t, err, service.ErrAccountNotFound)
}

func TestCorruptSecretNeverDegrades(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	acct := h.create(t, "writer@example.com", domain.RoleMember)

	enr, err := h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.NoError(t, err)

	otherVault, err := cryptox.NewVault(cryptox.DeriveVaultKey([]byte("rotated-key")))
	require.NoError(t, err)
	h.enrollment.Vault = otherVault

	_, err = h.enrollment.BeginEnrollment(ctx, acct.ID)
	require.ErrorIs(t, err, service.ErrCorruptSecret)

	_, err = h.enrollment.ConfirmEnrollment(ctx, acct.ID, h.code(t, enr.Secret))
	require.ErrorIs(t, err, service.ErrCorruptSecret)

	_, pending := h.load(t, acct.ID).MFA.(domain.PendingConfirmation)
	require.True(t, pending)
}
