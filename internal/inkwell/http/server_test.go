package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	inkwellhttp "github.com/aussiebroadwan/inkwell/internal/inkwell/http"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store/drivers/sqlite"
	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
	"github.com/aussiebroadwan/inkwell/pkg/totpx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer         = "Inkwell"
	testBootstrapToken = "bootstrap-secret"
	testPassword       = "correct horse battery staple"
)

// testLimits keeps rate limiting out of the way of scenario tests.
func testLimits() httpx.RateLimits {
	generous := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	return httpx.RateLimits{Strict: generous, Moderate: generous, Lenient: generous, Public: generous}
}

// newTestServer wires a router over an in-memory store. opts run before the
// routes are applied so they can swap out services.
func newTestServer(t *testing.T, limits httpx.RateLimits, opts ...func(*inkwellhttp.Router)) *inkwellsdk.Client {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	vault, err := cryptox.NewVault(cryptox.DeriveVaultKey([]byte("test-vault-key")))
	require.NoError(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test", pemKey)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierEdDSA(signer.KID(), signer.PublicKey(), testIssuer)

	accounts := &service.AccountService{Store: st, Passwords: cryptox.PasswordHasher{Pepper: "pepper"}}

	r := inkwellhttp.NewRouter(verifier, limits, "test", st, slogx.Discard())
	r.AccountService = accounts
	r.EnrollmentService = &service.EnrollmentService{
		Store:         st,
		Vault:         vault,
		TOTP:          totpx.NewEngine(),
		Issuer:        testIssuer,
		RecoveryCodes: totpx.GenerateRecoveryCodes,
	}
	r.GuardService = &service.GuardService{Store: st}
	r.BootstrapService = &service.BootstrapService{Store: st, Accounts: accounts, Token: testBootstrapToken}
	r.TokenService = &service.TokenService{Signer: signer, Issuer: testIssuer, AccessTTL: 5 * time.Minute}
	for _, opt := range opts {
		opt(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return inkwellsdk.NewClient(srv.URL)
}

func currentCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totpx.NewEngine().Code(secret, time.Now())
	require.NoError(t, err)
	return code
}

// enroll completes MFA enrollment for s.
func enroll(t *testing.T, ctx context.Context, s *inkwellsdk.Session) {
	t.Helper()
	enr, err := s.Enrollment(ctx)
	require.NoError(t, err)
	acct, err := s.ConfirmEnrollment(ctx, currentCode(t, enr.Secret))
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.MFAStateConfirmed, acct.MFAState)
}

// bootstrapMaster creates the first master and returns an enrolled session.
func bootstrapMaster(t *testing.T, ctx context.Context, c *inkwellsdk.Client) (*inkwellsdk.Session, inkwellsdk.Account) {
	t.Helper()
	resp, err := c.Bootstrap(ctx, testBootstrapToken, inkwellsdk.BootstrapRequest{
		Email:    "master@example.com",
		Name:     "Master",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.RoleMaster, resp.Account.Role)

	s, err := c.Login(ctx, "master@example.com", testPassword)
	require.NoError(t, err)
	enroll(t, ctx, s)
	return s, resp.Account
}
