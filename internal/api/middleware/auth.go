package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/auth"
)

// DemoUserID identifies callers without a token when anonymous access is on.
const DemoUserID = "demo-user-id"

// identityKey is the context key for the caller identity.
type identityKey struct{}

type identity struct {
	userID    string
	anonymous bool
}

// TokenValidator validates bearer access tokens.
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.JWTClaims, error)
}

// IdentityConfig configures the Identity middleware.
type IdentityConfig struct {
	Tokens TokenValidator

	// AllowAnonymous lets requests without an Authorization header through
	// as AnonymousUserID.
	AllowAnonymous bool

	// AnonymousUserID defaults to DemoUserID.
	AnonymousUserID string
}

// Identity resolves the caller from a JWT bearer token. A present but
// invalid token is always rejected, even when anonymous access is allowed.
func Identity(cfg IdentityConfig) func(http.Handler) http.Handler {
	anonymousID := cfg.AnonymousUserID
	if anonymousID == "" {
		anonymousID = DemoUserID
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if !cfg.AllowAnonymous {
					writeUnauthorized(w, r, "missing authorization header")
					return
				}
				ctx := context.WithValue(r.Context(), identityKey{}, identity{userID: anonymousID, anonymous: true})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Check for Bearer prefix (case-insensitive)
			const bearerPrefix = "Bearer "
			if len(authHeader) < len(bearerPrefix) ||
				!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
			if tokenString == "" {
				writeUnauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := cfg.Tokens.ValidateAccessToken(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrAccessTokenExpired):
					writeUnauthorized(w, r, "access token has expired")
				case errors.Is(err, auth.ErrInvalidAccessToken):
					writeUnauthorized(w, r, "invalid access token")
				default:
					writeUnauthorized(w, r, "authentication failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity{userID: claims.UserID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated rejects requests without a token-backed identity.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(identityKey{}).(identity)
		if !ok || id.anonymous || id.userID == "" {
			writeUnauthorized(w, r, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeUnauthorized writes a 401 Unauthorized response.
// This is implemented directly here to avoid import cycle with response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetUserID retrieves the caller's user ID from the context.
// Returns an empty string if Identity did not run.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(identityKey{}).(identity); ok {
		return id.userID
	}
	return ""
}

// IsAnonymous reports whether the caller was admitted without a token.
func IsAnonymous(ctx context.Context) bool {
	id, ok := ctx.Value(identityKey{}).(identity)
	return ok && id.anonymous
}
