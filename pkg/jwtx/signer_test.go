package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "Inkwell"

func newSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newSigner(t, "k1")
	require.Equal(t, "k1", signer.KID())

	claims := jwtx.NewAccessClaims("01JABCDEF", "admin", []string{"pwd"}, 5*time.Minute, exampleIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	verifier := jwtx.NewVerifierEdDSA("k1", signer.PublicKey(), exampleIssuer)
	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, "admin", parsed.Role)
	require.Equal(t, []string{"pwd"}, parsed.AMR)
	require.NotEmpty(t, parsed.ID)
}

func TestEdDSAVerifyFailures(t *testing.T) {
	signer := newSigner(t, "k1")
	now := time.Now().UTC()

	good, err := signer.Sign(jwtx.NewAccessClaims("acct", "member", nil, time.Minute, exampleIssuer, now))
	require.NoError(t, err)

	t.Run("wrong issuer", func(t *testing.T) {
		v := jwtx.NewVerifierEdDSA("k1", signer.PublicKey(), "someone-else")
		_, err := v.Verify(good)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("unknown kid", func(t *testing.T) {
		v := jwtx.NewVerifierEdDSA("k2", signer.PublicKey(), exampleIssuer)
		_, err := v.Verify(good)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newSigner(t, "k1")
		v := jwtx.NewVerifierEdDSA("k1", other.PublicKey(), exampleIssuer)
		_, err := v.Verify(good)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := signer.Sign(jwtx.NewAccessClaims("acct", "member", nil, time.Minute, exampleIssuer, now.Add(-time.Hour)))
		require.NoError(t, err)
		v := jwtx.NewVerifierEdDSA("k1", signer.PublicKey(), exampleIssuer)
		_, err = v.Verify(old)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("garbage", func(t *testing.T) {
		v := jwtx.NewVerifierEdDSA("k1", signer.PublicKey(), exampleIssuer)
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestNewSignerEdDSARejectsBadPEM(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("k", []byte("nope"))
	require.Error(t, err)
}
