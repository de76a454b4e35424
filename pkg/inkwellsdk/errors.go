package inkwellsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	ErrorCodeInvalidRequest           = "invalid_request"
	ErrorCodeValidation               = "validation_error"
	ErrorCodeInvalidCredentials       = "invalid_credentials"
	ErrorCodeInvalidToken             = "invalid_token"
	ErrorCodeForbidden                = "forbidden"
	ErrorCodeNotFound                 = "not_found"
	ErrorCodeConflict                 = "conflict"
	ErrorCodeUnauthorized             = "unauthorized"
	ErrorCodeInvalidCode              = "invalid_code"
	ErrorCodeInvalidState             = "invalid_state"
	ErrorCodeCorruptSecret            = "corrupt_secret"
	ErrorCodeSelfDeletionForbidden    = "self_deletion_forbidden"
	ErrorCodeLastMasterAdminProtected = "last_master_admin_protected"
	ErrorCodeRateLimited              = "rate_limit_exceeded"
	ErrorCodeServerError              = "server_error"
)

// APIError is the error shape shared by the server (to write responses) and
// the client (to report them).
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on the error code so callers can use errors.Is with the
// predefined values regardless of description.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as a JSON response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// NewAPIError creates an APIError with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "These credentials do not match our records.",
	}
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "Unauthorized action.",
	}
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "account not found",
	}
	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "The email has already been taken.",
	}
	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeInvalidCode,
		Description: "The provided two factor authentication code was invalid.",
	}
	ErrInvalidState = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeInvalidState,
		Description: "the account is not in a state that allows this operation",
	}
	ErrCorruptSecret = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeCorruptSecret,
		Description: "the stored two factor secret could not be read; contact an administrator",
	}
	ErrSelfDeletionForbidden = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeSelfDeletionForbidden,
		Description: "You cannot delete your own account.",
	}
	ErrLastMasterAdminProtected = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeLastMasterAdminProtected,
		Description: "Cannot remove the last master admin.",
	}
	ErrRateLimited = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimited,
		Description: "Too many requests. Please try again later.",
	}
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// EnrollmentRequiredError is returned when the server redirected the request
// to the MFA enrollment page.
type EnrollmentRequiredError struct {
	Location string
}

func (e *EnrollmentRequiredError) Error() string {
	return "mfa enrollment required: see " + e.Location
}

// parseErrorResponse turns a non-success response into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusSeeOther || resp.StatusCode == http.StatusFound {
		return &EnrollmentRequiredError{Location: resp.Header.Get("Location")}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
