package inkwellsdk

import "time"

// Roles, highest first.
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// MFA states as reported by the API.
const (
	MFAStateUnregistered = "unregistered"
	MFAStatePending      = "pending_confirmation"
	MFAStateConfirmed    = "confirmed"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request fields fail validation.
type ValidationErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description"`
	Details          map[string]string `json:"details,omitempty"`
}

// TokenResponse carries a bearer access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Account is the public view of an account.
type Account struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	MFAState       string     `json:"mfa_state"`
	MFAConfirmedAt *time.Time `json:"mfa_confirmed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AccountList is returned by the admin listings.
type AccountList struct {
	Accounts []Account `json:"accounts"`
}

// Enrollment is what an authenticator app needs to be set up. Recovery codes
// are shown in plaintext here and nowhere else.
type Enrollment struct {
	State           string   `json:"state"`
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioning_uri"`
	RecoveryCodes   []string `json:"recovery_codes"`
	QRCode          string   `json:"qr_code"` // PNG data URI
	QRCodeURL       string   `json:"qr_code_url"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Account    Account       `json:"account"`
	Token      TokenResponse `json:"token"`
	Enrollment Enrollment    `json:"enrollment"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BootstrapRequest creates the first master account.
type BootstrapRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type BootstrapResponse struct {
	Account Account `json:"account"`
}

// BootstrapStatus tells a setup tool whether bootstrap is still possible.
type BootstrapStatus struct {
	Enabled      bool `json:"enabled"`
	Bootstrapped bool `json:"bootstrapped"`
}

type ConfirmEnrollmentRequest struct {
	Code string `json:"code"`
}

// CreateAccountRequest is the master-only account creation payload.
type CreateAccountRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type DashboardResponse struct {
	Account Account `json:"account"`
	Message string  `json:"message"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
