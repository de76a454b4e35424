package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

// EnrollmentGate confines accounts without confirmed MFA to the enrollment
// routes. It reads the MFA state from the store on every request, so a
// confirmation takes effect without a new token. Must run after
// AuthnMiddleware.
func EnrollmentGate(accounts *service.AccountService, endpoint service.Endpoint) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, authenticated := httpx.AccountIDFromContext(ctx)
			if !authenticated {
				next.ServeHTTP(w, r)
				return
			}

			acct, err := accounts.GetAccount(ctx, id)
			if errors.Is(err, service.ErrAccountNotFound) {
				// Token outlived its account.
				inkwellsdk.ErrInvalidToken.WriteError(w)
				return
			}
			if err != nil {
				slogx.FromContext(ctx).Error("failed to load account for gate", "err", err)
				inkwellsdk.ErrServerError.WriteError(w)
				return
			}

			if service.Gate(true, acct.MFA, endpoint) == service.RedirectToEnrollment {
				slogx.FromContext(ctx).Debug("redirecting to enrollment", "mfa_state", acct.MFA.Name())
				httpx.NoCache(w)
				http.Redirect(w, r, EnrollmentPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
