package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	inkwellhttp "github.com/aussiebroadwan/inkwell/internal/inkwell/http"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/totpx"
	"github.com/stretchr/testify/require"
)

func TestRegistrationEnrollmentFlow(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	reg, err := c.Register(ctx, inkwellsdk.RegisterRequest{
		Email:    "writer@example.com",
		Name:     "Writer",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.RoleMember, reg.Account.Role)
	require.Equal(t, inkwellsdk.MFAStatePending, reg.Account.MFAState)
	require.Len(t, reg.Enrollment.RecoveryCodes, 8)
	require.Contains(t, reg.Enrollment.ProvisioningURI, "otpauth://totp/")
	require.True(t, strings.HasPrefix(reg.Enrollment.QRCode, "data:image/png;base64,"))

	s := c.NewSession(reg.Token)

	// Every protected route redirects to enrollment until confirmed.
	_, err = s.Dashboard(ctx)
	var redirect *inkwellsdk.EnrollmentRequiredError
	require.ErrorAs(t, err, &redirect)
	require.Equal(t, "/v1/mfa/enrollment", redirect.Location)

	_, err = s.Me(ctx)
	require.ErrorAs(t, err, &redirect)

	// Re-display shows the same material.
	enr, err := s.Enrollment(ctx)
	require.NoError(t, err)
	require.Equal(t, reg.Enrollment.Secret, enr.Secret)
	require.Equal(t, reg.Enrollment.RecoveryCodes, enr.RecoveryCodes)
	require.Equal(t, reg.Enrollment.QRCode, enr.QRCode)

	png, err := s.EnrollmentQR(ctx)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = s.ConfirmEnrollment(ctx, "000000x")
	require.ErrorIs(t, err, inkwellsdk.ErrInvalidCode)

	acct, err := s.ConfirmEnrollment(ctx, currentCode(t, enr.Secret))
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.MFAStateConfirmed, acct.MFAState)
	require.NotNil(t, acct.MFAConfirmedAt)

	dash, err := s.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, reg.Account.ID, dash.Account.ID)

	// Enrollment is closed once confirmed.
	_, err = s.Enrollment(ctx)
	require.ErrorIs(t, err, inkwellsdk.ErrInvalidState)

	// A fresh login keeps the confirmed state.
	s2, err := c.Login(ctx, "WRITER@example.com", testPassword)
	require.NoError(t, err)
	_, err = s2.Dashboard(ctx)
	require.NoError(t, err)

	// Members are not administrators.
	_, err = s2.ListAdmins(ctx)
	require.ErrorIs(t, err, inkwellsdk.ErrForbidden)
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	_, err := c.Register(ctx, inkwellsdk.RegisterRequest{Email: "nope", Name: "", Password: "short"})
	var apiErr *inkwellsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, inkwellsdk.ErrorCodeValidation, apiErr.Code)

	req := inkwellsdk.RegisterRequest{Email: "dup@example.com", Name: "Dup", Password: testPassword}
	_, err = c.Register(ctx, req)
	require.NoError(t, err)
	_, err = c.Register(ctx, req)
	require.ErrorIs(t, err, inkwellsdk.ErrEmailTaken)
}

func TestRegisterEnrollmentFailureRecoversThroughLogin(t *testing.T) {
	ctx := context.Background()

	var broken atomic.Bool
	broken.Store(true)
	c := newTestServer(t, testLimits(), func(r *inkwellhttp.Router) {
		r.EnrollmentService.RecoveryCodes = func() ([]string, error) {
			if broken.Load() {
				return nil, errors.New("entropy unavailable")
			}
			return totpx.GenerateRecoveryCodes()
		}
	})

	req := inkwellsdk.RegisterRequest{Email: "late@example.com", Name: "Late", Password: testPassword}
	_, err := c.Register(ctx, req)
	require.ErrorIs(t, err, inkwellsdk.ErrServerError)

	broken.Store(false)

	// The account exists but is still Unregistered.
	_, err = c.Register(ctx, req)
	require.ErrorIs(t, err, inkwellsdk.ErrEmailTaken)

	s, err := c.Login(ctx, req.Email, req.Password)
	require.NoError(t, err)

	me, err := s.Me(ctx)
	var redirect *inkwellsdk.EnrollmentRequiredError
	require.ErrorAs(t, err, &redirect)
	require.Nil(t, me)

	enr, err := s.Enrollment(ctx)
	require.NoError(t, err)
	require.Len(t, enr.RecoveryCodes, 8)

	acct, err := s.ConfirmEnrollment(ctx, currentCode(t, enr.Secret))
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.MFAStateConfirmed, acct.MFAState)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	_, err := c.Login(ctx, "ghost@example.com", testPassword)
	require.ErrorIs(t, err, inkwellsdk.ErrInvalidCredentials)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	s := c.NewSession(inkwellsdk.TokenResponse{AccessToken: "garbage", ExpiresIn: 60})
	_, err := s.Dashboard(ctx)
	require.ErrorIs(t, err, inkwellsdk.ErrInvalidToken)
}

func TestMasterPromoteDemoteScenario(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	m, master := bootstrapMaster(t, ctx, c)

	created, err := m.CreateAccount(ctx, inkwellsdk.CreateAccountRequest{
		Email:    "x@example.com",
		Name:     "X",
		Password: testPassword,
		Role:     inkwellsdk.RoleMember,
	})
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.MFAStateUnregistered, created.MFAState)

	members, err := m.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)

	// The sole master cannot step down or delete themself.
	_, err = m.ChangeRole(ctx, master.ID, inkwellsdk.RoleAdmin)
	require.ErrorIs(t, err, inkwellsdk.ErrLastMasterAdminProtected)
	var apiErr *inkwellsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Cannot demote the last master admin.", apiErr.Description)

	err = m.DeleteAccount(ctx, master.ID)
	require.ErrorIs(t, err, inkwellsdk.ErrSelfDeletionForbidden)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "You cannot delete your own account.", apiErr.Description)

	// Promote X, then M steps down.
	promoted, err := m.ChangeRole(ctx, created.ID, inkwellsdk.RoleMaster)
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.RoleMaster, promoted.Role)

	demoted, err := m.ChangeRole(ctx, master.ID, inkwellsdk.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.RoleAdmin, demoted.Role)

	// M lost master authority immediately, without a new token.
	_, err = m.ListAdmins(ctx)
	require.ErrorIs(t, err, inkwellsdk.ErrForbidden)

	// X must enroll before using the admin surface.
	x, err := c.Login(ctx, "x@example.com", testPassword)
	require.NoError(t, err)
	_, err = x.ListAdmins(ctx)
	var redirect *inkwellsdk.EnrollmentRequiredError
	require.True(t, errors.As(err, &redirect))
	enroll(t, ctx, x)

	admins, err := x.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)

	_, err = x.ChangeRole(ctx, created.ID, inkwellsdk.RoleMember)
	require.ErrorIs(t, err, inkwellsdk.ErrLastMasterAdminProtected)

	require.NoError(t, x.DeleteAccount(ctx, master.ID))
	admins, err = x.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, created.ID, admins[0].ID)
}

func TestAdminValidation(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())
	m, _ := bootstrapMaster(t, ctx, c)

	_, err := m.ChangeRole(ctx, "missing", inkwellsdk.RoleAdmin)
	require.ErrorIs(t, err, inkwellsdk.ErrNotFound)

	_, err = m.ChangeRole(ctx, "missing", "owner")
	var apiErr *inkwellsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestBootstrapOnlyOnce(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	status, err := c.BootstrapStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, inkwellsdk.BootstrapStatus{Enabled: true, Bootstrapped: false}, *status)

	req := inkwellsdk.BootstrapRequest{Email: "root@example.com", Name: "Root", Password: testPassword}

	_, err = c.Bootstrap(ctx, "wrong", req)
	var apiErr *inkwellsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = c.Bootstrap(ctx, testBootstrapToken, req)
	require.NoError(t, err)

	status, err = c.BootstrapStatus(ctx)
	require.NoError(t, err)
	require.True(t, status.Bootstrapped)

	req.Email = "again@example.com"
	_, err = c.Bootstrap(ctx, testBootstrapToken, req)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	ctx := context.Background()
	c := newTestServer(t, testLimits())

	live, err := c.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
