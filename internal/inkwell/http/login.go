package http

import (
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
)

type LoginHandler struct {
	AccountService *service.AccountService
	TokenService   *service.TokenService
}

// ServeHTTP exchanges email and password for an access token.
//
//	@Summary		Log in
//	@Description	Checks email and password and returns an access token. Accounts that have not confirmed MFA can still log in but are confined to the enrollment endpoints.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inkwellsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	inkwellsdk.TokenResponse	"Access token"
//	@Failure		400		{object}	inkwellsdk.ErrorResponse	"Invalid request body"
//	@Failure		401		{object}	inkwellsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	inkwellsdk.ErrorResponse	"Rate limited"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req inkwellsdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		inkwellsdk.ErrInvalidCredentials.WriteError(w)
		return
	}

	acct, err := h.AccountService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tok, err := h.TokenService.Issue(acct)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(tok))
}
