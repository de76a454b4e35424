package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

// writeServiceError maps service errors onto API errors. Guard refusals keep
// their operator-facing reason.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCode):
		inkwellsdk.ErrInvalidCode.WriteError(w)
	case errors.Is(err, service.ErrInvalidState):
		inkwellsdk.ErrInvalidState.WriteError(w)
	case errors.Is(err, service.ErrCorruptSecret):
		slogx.FromContext(r.Context()).Error("MFA secret unreadable", "err", err)
		inkwellsdk.ErrCorruptSecret.WriteError(w)
	case errors.Is(err, service.ErrSelfDeletionForbidden):
		refusal(inkwellsdk.ErrSelfDeletionForbidden, err).WriteError(w)
	case errors.Is(err, service.ErrLastMasterAdminProtected):
		refusal(inkwellsdk.ErrLastMasterAdminProtected, err).WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		inkwellsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		inkwellsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		inkwellsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidRole):
		inkwellsdk.NewAPIError(http.StatusBadRequest, inkwellsdk.ErrorCodeValidation, "The selected role is invalid.").WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		inkwellsdk.ErrForbidden.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		inkwellsdk.ErrServerError.WriteError(w)
	}
}

func refusal(base *inkwellsdk.APIError, err error) *inkwellsdk.APIError {
	reason := service.ReasonFor(err)
	if reason == "" {
		return base
	}
	return inkwellsdk.NewAPIError(base.StatusCode, base.Code, reason)
}

// decodeRequest decodes a JSON body into dst, writing 400 on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
		inkwellsdk.NewAPIError(http.StatusBadRequest, inkwellsdk.ErrorCodeInvalidRequest, "Request body must be valid JSON").WriteError(w)
		return false
	}
	return true
}

// validationFailed writes a 400 listing field errors when errs is non-nil.
func validationFailed(w http.ResponseWriter, errs map[string]string) bool {
	if errs == nil {
		return false
	}
	httpx.WriteJSON(w, http.StatusBadRequest, inkwellsdk.ValidationErrorResponse{
		Error:            inkwellsdk.ErrorCodeValidation,
		ErrorDescription: "validation failed for some fields",
		Details:          errs,
	})
	return true
}

// accountID returns the authenticated account ID or writes 401.
func accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.AccountIDFromContext(r.Context())
	if !ok {
		inkwellsdk.ErrInvalidToken.WriteError(w)
	}
	return id, ok
}
