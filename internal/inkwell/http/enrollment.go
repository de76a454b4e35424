package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/qrx"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

// EnrollmentHandler serves the MFA enrollment endpoints.
type EnrollmentHandler struct {
	EnrollmentService *service.EnrollmentService
}

// HandleShow handles GET /v1/mfa/enrollment
//
//	@Summary		Show MFA enrollment
//	@Description	Starts enrollment for an unregistered account, or re-displays the pending secret and recovery codes. Confirmed accounts get 409.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	inkwellsdk.Enrollment		"Secret, provisioning URI and recovery codes"
//	@Failure		401	{object}	inkwellsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		409	{object}	inkwellsdk.ErrorResponse	"MFA already confirmed"
//	@Failure		500	{object}	inkwellsdk.ErrorResponse	"Stored secret unreadable"
//	@Router			/v1/mfa/enrollment [get].
func (h *EnrollmentHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	enr, err := h.EnrollmentService.BeginEnrollment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out, err := toAPIEnrollment(enr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleQR handles GET /v1/mfa/enrollment/qr.png
//
//	@Summary		Enrollment QR code
//	@Description	PNG QR code of the provisioning URI for scanning with an authenticator app.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		png
//	@Param			size	query		int							false	"Edge length in pixels (64-1024)"
//	@Success		200		{file}		binary						"PNG image"
//	@Failure		400		{object}	inkwellsdk.ErrorResponse	"Invalid size"
//	@Failure		409		{object}	inkwellsdk.ErrorResponse	"MFA already confirmed"
//	@Router			/v1/mfa/enrollment/qr.png [get].
func (h *EnrollmentHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	size := qrx.DefaultSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			inkwellsdk.NewAPIError(http.StatusBadRequest, inkwellsdk.ErrorCodeInvalidRequest, "size must be an integer").WriteError(w)
			return
		}
		size = n
	}

	enr, err := h.EnrollmentService.BeginEnrollment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	png, err := qrx.Generate(enr.ProvisioningURI, size)
	if errors.Is(err, qrx.ErrInvalidSize) {
		inkwellsdk.NewAPIError(http.StatusBadRequest, inkwellsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// HandleConfirm handles POST /v1/mfa/enrollment/confirm
//
//	@Summary		Confirm MFA enrollment
//	@Description	Verifies a TOTP code against the pending secret. On success the account is confirmed and the gate lets it through.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inkwellsdk.ConfirmEnrollmentRequest	true	"TOTP code"
//	@Success		200		{object}	inkwellsdk.Account					"Confirmed account"
//	@Failure		400		{object}	inkwellsdk.ErrorResponse			"Invalid request body"
//	@Failure		409		{object}	inkwellsdk.ErrorResponse			"No pending enrollment"
//	@Failure		422		{object}	inkwellsdk.ErrorResponse			"Invalid code"
//	@Failure		429		{object}	inkwellsdk.ErrorResponse			"Rate limited"
//	@Router			/v1/mfa/enrollment/confirm [post].
func (h *EnrollmentHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req inkwellsdk.ConfirmEnrollmentRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	acct, err := h.EnrollmentService.ConfirmEnrollment(r.Context(), id, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("MFA enrollment completed")
	httpx.WriteJSON(w, http.StatusOK, toAPIAccount(acct))
}
