package http

import (
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
)

// MeHandler serves the caller's own account views.
type MeHandler struct {
	AccountService *service.AccountService
}

// HandleMe handles GET /v1/me
//
//	@Summary		Current account
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	inkwellsdk.Account			"The authenticated account"
//	@Success		303	"MFA enrollment required; see Location"
//	@Failure		401	{object}	inkwellsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/me [get].
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	acct, err := h.AccountService.GetAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAccount(acct))
}

// HandleDashboard handles GET /v1/dashboard
//
//	@Summary		Dashboard
//	@Description	Landing page for accounts that completed MFA enrollment.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	inkwellsdk.DashboardResponse	"Dashboard"
//	@Success		303	"MFA enrollment required; see Location"
//	@Failure		401	{object}	inkwellsdk.ErrorResponse		"Invalid or missing access token"
//	@Router			/v1/dashboard [get].
func (h *MeHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	acct, err := h.AccountService.GetAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, inkwellsdk.DashboardResponse{
		Account: toAPIAccount(acct),
		Message: "Welcome back, " + acct.Name + ".",
	})
}
