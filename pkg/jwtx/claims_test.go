package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "inkwell"},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("inkwell"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid window", func(t *testing.T) {
		c := jwtx.NewAccessClaims("acct", "member", []string{"pwd"}, time.Minute, "inkwell", now)
		require.NoError(t, c.ValidateExpiry(now))
	})

	t.Run("expired", func(t *testing.T) {
		c := jwtx.NewAccessClaims("acct", "member", nil, time.Minute, "inkwell", now.Add(-time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := jwtx.NewAccessClaims("acct", "member", nil, time.Minute, "inkwell", now.Add(time.Hour))
		require.ErrorIs(t, c.ValidateExpiry(now), jwtx.ErrNotYetValid)
	})
}

func TestNewJTIUnique(t *testing.T) {
	require.NotEqual(t, jwtx.NewJTI(), jwtx.NewJTI())
}
