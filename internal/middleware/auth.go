package middleware

import (
	"context"
	"net/http"

	"github.com/Mart1n-S/WatchListy-sub000/internal/utils"
)

type ctxKey int

const principalKey ctxKey = 0

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID uint
	Pseudo string
	Role   string
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// principal to the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
				return
			}
			userID, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "auth.unauthorized")
				return
			}
			p := Principal{UserID: userID}
			if pseudo, ok := claims["pseudo"].(string); ok {
				p.Pseudo = pseudo
			}
			if role, ok := claims["role"].(string); ok {
				p.Role = role
			}
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the principal when a valid bearer token is present
// and lets the request through anonymously otherwise. Used on public reads
// that personalize their response for signed-in callers.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			p := Principal{UserID: userID}
			if pseudo, ok := claims["pseudo"].(string); ok {
				p.Pseudo = pseudo
			}
			if role, ok := claims["role"].(string); ok {
				p.Role = role
			}
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the principal stored by RequireAuth, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns a context carrying p; test helper for handlers that
// sit behind RequireAuth in production.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
