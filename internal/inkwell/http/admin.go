package http

import (
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
)

// AdminHandler serves the master-only account administration endpoints.
type AdminHandler struct {
	AccountService *service.AccountService
	GuardService   *service.GuardService
}

// HandleListAdmins handles GET /v1/admin/admins
//
//	@Summary		List admins
//	@Description	Admins and masters, newest first.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	inkwellsdk.AccountList		"Accounts"
//	@Failure		401	{object}	inkwellsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	inkwellsdk.ErrorResponse	"Not a master"
//	@Router			/v1/admin/admins [get].
func (h *AdminHandler) HandleListAdmins(w http.ResponseWriter, r *http.Request) {
	accts, err := h.AccountService.ListAdmins(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAccounts(accts))
}

// HandleListMembers handles GET /v1/admin/members
//
//	@Summary		List members
//	@Description	Members, newest first.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	inkwellsdk.AccountList		"Accounts"
//	@Failure		401	{object}	inkwellsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	inkwellsdk.ErrorResponse	"Not a master"
//	@Router			/v1/admin/members [get].
func (h *AdminHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	accts, err := h.AccountService.ListMembers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAccounts(accts))
}

// HandleCreate handles POST /v1/admin/accounts
//
//	@Summary		Create an account
//	@Description	Creates an account with any role. The new account must enroll in MFA on first login.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inkwellsdk.CreateAccountRequest		true	"Account details"
//	@Success		201		{object}	inkwellsdk.Account					"Created account"
//	@Failure		400		{object}	inkwellsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	inkwellsdk.ErrorResponse			"Not a master"
//	@Failure		409		{object}	inkwellsdk.ErrorResponse			"Email already taken"
//	@Router			/v1/admin/accounts [post].
func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req inkwellsdk.CreateAccountRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if validationFailed(w, req.Validate()) {
		return
	}

	acct, err := h.AccountService.CreateAccount(r.Context(), id, domain.NewAccountData{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAPIAccount(acct))
}

// HandleChangeRole handles PATCH /v1/admin/accounts/{id}/role
//
//	@Summary		Change an account's role
//	@Description	Refused with 422 when it would leave no master account.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Account ID"
//	@Param			request	body		inkwellsdk.ChangeRoleRequest		true	"New role"
//	@Success		200		{object}	inkwellsdk.Account					"Updated account"
//	@Failure		400		{object}	inkwellsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	inkwellsdk.ErrorResponse			"Not a master"
//	@Failure		404		{object}	inkwellsdk.ErrorResponse			"Account not found"
//	@Failure		422		{object}	inkwellsdk.ErrorResponse			"Last master admin protected"
//	@Router			/v1/admin/accounts/{id}/role [patch].
func (h *AdminHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	actingID, ok := accountID(w, r)
	if !ok {
		return
	}

	var req inkwellsdk.ChangeRoleRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if validationFailed(w, req.Validate()) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeServiceError(w, r, service.ErrInvalidRole)
		return
	}

	acct, err := h.GuardService.ChangeRole(r.Context(), actingID, r.PathValue("id"), role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAccount(acct))
}

// HandleDelete handles DELETE /v1/admin/accounts/{id}
//
//	@Summary		Delete an account
//	@Description	Nobody may delete their own account, and the last master cannot be deleted.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Account ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	inkwellsdk.ErrorResponse	"Not a master"
//	@Failure		404	{object}	inkwellsdk.ErrorResponse	"Account not found"
//	@Failure		422	{object}	inkwellsdk.ErrorResponse	"Self deletion or last master admin"
//	@Router			/v1/admin/accounts/{id} [delete].
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actingID, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := h.GuardService.DeleteAccount(r.Context(), actingID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
