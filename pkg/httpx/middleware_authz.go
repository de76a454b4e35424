package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

// RoleLookup returns the current role of an account. It must read persisted
// state: token claims can be stale after a promotion or demotion.
type RoleLookup func(ctx context.Context, accountID string) (string, error)

// RequireRole lets the request through only when the authenticated account
// currently holds one of the allowed roles. Must run after AuthnMiddleware.
func RequireRole(lookup RoleLookup, allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		want[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, ok := AccountIDFromContext(ctx)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			role, err := lookup(ctx, id)
			if err != nil {
				slogx.FromContext(ctx).Warn("role lookup failed", "err", err)
				writeForbidden(w)
				return
			}
			if _, ok := want[role]; !ok {
				writeForbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter) {
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "forbidden",
		"error_description": "Unauthorized action.",
	})
}
