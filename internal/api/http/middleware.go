package http

import (
	"context"
	"net/http"
	"strings"

	"swiftpay-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "account_claims"

// authMiddleware validates the Bearer token and stores the account claims on
// the request context. Refresh tokens are rejected here; they are only valid
// on the refresh endpoint.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: err.Error()})
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: security.ErrWrongTokenType.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminOnly rejects callers whose token does not carry the admin flag.
func adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil || !claims.IsAdmin {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Message: "admin access required"})
			return
		}
		next(w, r)
	}
}

func claimsFrom(r *http.Request) *security.AccountClaims {
	claims, _ := r.Context().Value(claimsContextKey).(*security.AccountClaims)
	return claims
}

// callerID returns the authenticated account id, or 0 if the request skipped
// the auth middleware.
func callerID(r *http.Request) int64 {
	if claims := claimsFrom(r); claims != nil {
		return claims.AccountID
	}
	return 0
}
