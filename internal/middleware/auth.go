package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/scott-daily/time-tracker-api/internal/auth"
)

// TokenVerifier defines the interface for bearer token validation.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// ClaimsKey is the context key for verified token claims
const ClaimsKey contextKey = "claims"

// Auth returns a middleware that validates bearer tokens against the
// identity provider. Requests without a well-formed, verifiable token are
// rejected with 403 before the downstream handler runs; on success the
// caller uid is attached to the request context. The uid from the token is
// the only identity handlers may trust, never a uid carried in the payload.
func Auth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeUnauthorized(w)
				return
			}

			claims, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), CallerUIDKey, claims.UID())
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCallerUID extracts the authenticated caller's uid from context
func GetCallerUID(ctx context.Context) string {
	if uid, ok := ctx.Value(CallerUIDKey).(string); ok {
		return uid
	}
	return ""
}

// GetClaims extracts the verified token claims from context
func GetClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
