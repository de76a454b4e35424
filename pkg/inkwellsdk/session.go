package inkwellsdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Session performs requests as one authenticated account.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
}

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Expired reports whether the token has passed its advertised lifetime.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !time.Now().Before(s.expiresAt)
}

func (s *Session) authHeaders() (map[string]string, error) {
	if s.Expired() {
		return nil, errors.New("access token expired; log in again")
	}
	return map[string]string{"Authorization": "Bearer " + s.AccessToken()}, nil
}

func (s *Session) doJSON(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	headers, err := s.authHeaders()
	if err != nil {
		return err
	}
	return s.client.doJSON(ctx, method, path, headers, body, target, expectedStatus)
}

// Me returns the caller's own account.
func (s *Session) Me(ctx context.Context) (*Account, error) {
	var out Account
	if err := s.doJSON(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the dashboard. Fails with *EnrollmentRequiredError
// while MFA enrollment is unconfirmed.
func (s *Session) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var out DashboardResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/dashboard", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Enrollment starts (or re-displays) MFA enrollment.
func (s *Session) Enrollment(ctx context.Context) (*Enrollment, error) {
	var out Enrollment
	if err := s.doJSON(ctx, http.MethodGet, "/v1/mfa/enrollment", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnrollmentQR returns the PNG QR code of the provisioning URI.
func (s *Session) EnrollmentQR(ctx context.Context) ([]byte, error) {
	headers, err := s.authHeaders()
	if err != nil {
		return nil, err
	}

	resp, err := s.client.do(ctx, http.MethodGet, "/v1/mfa/enrollment/qr.png", headers, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}
	return body, nil
}

// ConfirmEnrollment submits a TOTP code and returns the now-confirmed account.
func (s *Session) ConfirmEnrollment(ctx context.Context, code string) (*Account, error) {
	var out Account
	req := ConfirmEnrollmentRequest{Code: code}
	if err := s.doJSON(ctx, http.MethodPost, "/v1/mfa/enrollment/confirm", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListAdmins(ctx context.Context) ([]Account, error) {
	var out AccountList
	if err := s.doJSON(ctx, http.MethodGet, "/v1/admin/admins", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (s *Session) ListMembers(ctx context.Context) ([]Account, error) {
	var out AccountList
	if err := s.doJSON(ctx, http.MethodGet, "/v1/admin/members", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

func (s *Session) CreateAccount(ctx context.Context, req CreateAccountRequest) (*Account, error) {
	var out Account
	if err := s.doJSON(ctx, http.MethodPost, "/v1/admin/accounts", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ChangeRole(ctx context.Context, accountID, role string) (*Account, error) {
	var out Account
	path := "/v1/admin/accounts/" + url.PathEscape(accountID) + "/role"
	if err := s.doJSON(ctx, http.MethodPatch, path, ChangeRoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteAccount(ctx context.Context, accountID string) error {
	path := "/v1/admin/accounts/" + url.PathEscape(accountID)
	return s.doJSON(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
