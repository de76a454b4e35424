package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
)

// AMR values recorded in access tokens.
const AMRPassword = "pwd"

// AccessToken is a signed bearer token and its lifetime.
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}

// TokenService issues access tokens for authenticated accounts. Tokens only
// prove identity; MFA state and role are always read from the store.
type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
	Clock     Clock
}

func (s *TokenService) Issue(acct domain.Account) (AccessToken, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(acct.ID, acct.Role.String(), []string{AMRPassword}, ttl, s.Issuer, s.Clock.now())
	tok, err := s.Signer.Sign(claims)
	if err != nil {
		return AccessToken{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return AccessToken{Token: tok, ExpiresIn: ttl}, nil
}
