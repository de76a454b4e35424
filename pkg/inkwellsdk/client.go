package inkwellsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the unauthenticated endpoints and creates Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client that does not follow redirects.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// NewSession wraps an access token.
func (c *Client) NewSession(tok TokenResponse) *Session {
	return &Session{
		client:      c,
		accessToken: tok.AccessToken,
		expiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}
}

// Register creates a member account. The response includes the first access
// token and the enrollment material; the account stays confined to the
// enrollment endpoints until ConfirmEnrollment succeeds.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/register", nil, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges email and password for a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var tok TokenResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/login", nil, req, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(tok), nil
}

// Bootstrap creates the first master account.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	var out BootstrapResponse
	headers := map[string]string{"X-Bootstrap-Token": token}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/bootstrap", headers, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// BootstrapStatus reports whether the system still needs its first master.
func (c *Client) BootstrapStatus(ctx context.Context) (*BootstrapStatus, error) {
	var out BootstrapStatus
	if err := c.doJSON(ctx, http.MethodGet, "/v1/bootstrap", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
