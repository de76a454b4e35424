package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/inkwell/pkg/cryptox"
	"github.com/aussiebroadwan/inkwell/pkg/httpx"
	"github.com/aussiebroadwan/inkwell/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pemKey)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierEdDSA("k1", signer.PublicKey(), "Inkwell")

	token, err := signer.Sign(jwtx.NewAccessClaims("acct-7", "member", []string{"pwd"}, time.Minute, "Inkwell", time.Now()))
	require.NoError(t, err)

	var seen string
	h := httpx.AuthnMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.AccountIDFromContext(r.Context())
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "acct-7", seen)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	roles := map[string]string{"m": "master", "a": "admin"}
	lookup := func(_ context.Context, id string) (string, error) {
		role, ok := roles[id]
		if !ok {
			return "", errors.New("not found")
		}
		return role, nil
	}
	h := httpx.RequireRole(lookup, "master")(okHandler)

	serve := func(id string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id != "" {
			req = req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyAccountID, id))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, serve("m"))
	require.Equal(t, http.StatusForbidden, serve("a"))
	require.Equal(t, http.StatusForbidden, serve("ghost"))
	require.Equal(t, http.StatusUnauthorized, serve(""))
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Code string `json:"code"`
	}

	decode := func(raw string) (body, error) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	b, err := decode(`{"code":"123456"}`)
	require.NoError(t, err)
	require.Equal(t, "123456", b.Code)

	_, err = decode(`{"code":"1","extra":true}`)
	require.ErrorIs(t, err, httpx.ErrBadRequestBody)

	_, err = decode(`{"code":"1"}{"code":"2"}`)
	require.ErrorIs(t, err, httpx.ErrBadRequestBody)

	_, err = decode(`not json`)
	require.ErrorIs(t, err, httpx.ErrBadRequestBody)
}
