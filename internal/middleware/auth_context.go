package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"health-records-portal/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const DebugUserHeader = "X-Debug-User-ID"

// AuthContext:
//   - Si viene Bearer token y hay verifier => Verify() y setea claims.
//   - Si allowDebug => acepta X-Debug-User-ID (solo desarrollo/tests).
//   - Sin claims el request sigue; cada handler decide 401/403.
func AuthContext(verifier auth.AuthVerifier, allowDebug bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier != nil {
				if token := bearerToken(r.Header.Get("Authorization")); token != "" {
					if claims, err := verifier.Verify(r.Context(), token); err == nil {
						next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
						return
					}
				}
			}

			if allowDebug {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: uid})))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// UserID devuelve el id numérico del usuario autenticado.
func UserID(ctx context.Context) (int64, bool) {
	c, ok := GetClaims(ctx)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(c.UserID), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func bearerToken(authHeader string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
