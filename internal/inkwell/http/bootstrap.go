package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the first master account
//	@Description	Creates the first master account. Only available when a bootstrap token is configured and no account exists yet.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string								true	"Bootstrap token for authorization"
//	@Param			request				body		inkwellsdk.BootstrapRequest			true	"Master account details"
//	@Success		201					{object}	inkwellsdk.BootstrapResponse		"Created master account"
//	@Failure		400					{object}	inkwellsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	inkwellsdk.ErrorResponse			"Missing or invalid bootstrap token, or system already bootstrapped"
//	@Failure		404					{object}	inkwellsdk.ErrorResponse			"Bootstrap not enabled (no token configured)"
//	@Failure		500					{object}	inkwellsdk.ErrorResponse			"Failed to create account"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if !h.BootstrapService.Enabled() {
		inkwellsdk.NewAPIError(http.StatusNotFound, inkwellsdk.ErrorCodeNotFound, "Bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		inkwellsdk.NewAPIError(http.StatusUnauthorized, inkwellsdk.ErrorCodeUnauthorized, "Bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body and validate
	var req inkwellsdk.BootstrapRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if validationFailed(w, req.Validate()) {
		return
	}

	// 4. Perform bootstrap
	acct, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.NewAccountData{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			inkwellsdk.NewAPIError(http.StatusUnauthorized, inkwellsdk.ErrorCodeUnauthorized, "System has already been bootstrapped").WriteError(w)
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			inkwellsdk.NewAPIError(http.StatusUnauthorized, inkwellsdk.ErrorCodeUnauthorized, "Invalid bootstrap token").WriteError(w)
		default:
			writeServiceError(w, r, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, inkwellsdk.BootstrapResponse{
		Account: toAPIAccount(acct),
	})
}

// HandleStatus handles GET /v1/bootstrap
//
//	@Summary		Bootstrap status
//	@Description	Reports whether bootstrap is enabled and whether the first account already exists.
//	@Tags			Bootstrap
//	@Produce		json
//	@Success		200	{object}	inkwellsdk.BootstrapStatus	"Bootstrap status"
//	@Failure		500	{object}	inkwellsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/bootstrap [get].
func (h *BootstrapHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	done, err := h.BootstrapService.IsBootstrapped(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, inkwellsdk.BootstrapStatus{
		Enabled:      h.BootstrapService.Enabled(),
		Bootstrapped: done,
	})
}
