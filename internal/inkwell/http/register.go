package http

import (
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

type RegisterHandler struct {
	AccountService    *service.AccountService
	EnrollmentService *service.EnrollmentService
	TokenService      *service.TokenService
}

// ServeHTTP handles self-service signup.
//
//	@Summary		Register a member account
//	@Description	Creates a member account, issues an access token and starts MFA enrollment. The response is the only place the recovery codes are shown besides the enrollment endpoint.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inkwellsdk.RegisterRequest			true	"Account details"
//	@Success		201		{object}	inkwellsdk.RegisterResponse			"Account, token and enrollment material"
//	@Failure		400		{object}	inkwellsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		409		{object}	inkwellsdk.ErrorResponse			"Email already taken"
//	@Failure		429		{object}	inkwellsdk.ErrorResponse			"Rate limited"
//	@Failure		500		{object}	inkwellsdk.ErrorResponse			"Internal server error"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req inkwellsdk.RegisterRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if validationFailed(w, req.Validate()) {
		return
	}

	acct, err := h.AccountService.Register(ctx, domain.NewAccountData{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	ctx = slogx.WithAccountID(ctx, acct.ID)

	// Enrollment runs before a token exists. If it fails the account stays
	// Unregistered and the client recovers by logging in, which leads to
	// GET /v1/mfa/enrollment.
	enr, err := h.EnrollmentService.BeginEnrollment(ctx, acct.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	enrollment, err := toAPIEnrollment(enr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	acct, err = h.AccountService.GetAccount(ctx, acct.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tok, err := h.TokenService.Issue(acct)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("account registered")

	httpx.WriteJSON(w, http.StatusCreated, inkwellsdk.RegisterResponse{
		Account:    toAPIAccount(acct),
		Token:      toTokenResponse(tok),
		Enrollment: enrollment,
	})
}
