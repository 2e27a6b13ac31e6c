package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/api/middleware"
	"github.com/trekscout/trekscout/internal/auth"
)

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "trekscout",
		Audience:   "trekscout-api",
	})
}

// captureIdentity returns a handler that records the resolved identity.
func captureIdentity(userID *string, anonymous *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*userID = middleware.GetUserID(r.Context())
		*anonymous = middleware.IsAnonymous(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentity_MissingHeader(t *testing.T) {
	tests := []struct {
		name           string
		allowAnonymous bool
		wantStatus     int
		wantUser       string
	}{
		{"anonymous allowed", true, http.StatusOK, middleware.DemoUserID},
		{"anonymous refused", false, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var userID string
			var anonymous bool
			handler := middleware.Identity(middleware.IdentityConfig{
				Tokens:         newJWTService(),
				AllowAnonymous: tt.allowAnonymous,
			})(captureIdentity(&userID, &anonymous))

			req := httptest.NewRequest(http.MethodGet, "/v1/profile", http.NoBody)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, userID)
			assert.Equal(t, tt.allowAnonymous, anonymous)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "missing authorization header")
			}
		})
	}
}

func TestIdentity_CustomAnonymousUser(t *testing.T) {
	var userID string
	var anonymous bool
	handler := middleware.Identity(middleware.IdentityConfig{
		Tokens:          newJWTService(),
		AllowAnonymous:  true,
		AnonymousUserID: "guest",
	})(captureIdentity(&userID, &anonymous))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/wishlist", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest", userID)
}

func TestIdentity_InvalidAuthorizationFormat(t *testing.T) {
	handler := middleware.Identity(middleware.IdentityConfig{
		Tokens:         newJWTService(),
		AllowAnonymous: true,
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", "token123"},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase no space", "bearer token123"},
		{"empty bearer", "Bearer "},
		{"just bearer", "Bearer"},
		{"garbage token", "Bearer invalid.jwt.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/profile", http.NoBody)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "a bad token never falls back to anonymous")
		})
	}
}

func TestIdentity_InvalidToken(t *testing.T) {
	handler := middleware.Identity(middleware.IdentityConfig{Tokens: newJWTService()})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", http.NoBody)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid access token")
}

func TestIdentity_ValidToken(t *testing.T) {
	jwtService := newJWTService()
	token, _, err := jwtService.GenerateAccessToken("user-123")
	require.NoError(t, err)

	var userID string
	var anonymous bool
	handler := middleware.Identity(middleware.IdentityConfig{
		Tokens:         jwtService,
		AllowAnonymous: true,
	})(captureIdentity(&userID, &anonymous))

	for _, prefix := range []string{"Bearer ", "bearer ", "BEARER "} {
		t.Run(prefix, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/profile", http.NoBody)
			req.Header.Set("Authorization", prefix+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "user-123", userID)
			assert.False(t, anonymous)
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	jwtService := newJWTService()
	token, _, err := jwtService.GenerateAccessToken("admin-1")
	require.NoError(t, err)

	handler := middleware.Identity(middleware.IdentityConfig{
		Tokens:         jwtService,
		AllowAnonymous: true,
	})(middleware.RequireAuthenticated(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	anon := httptest.NewRecorder()
	handler.ServeHTTP(anon, httptest.NewRequest(http.MethodPost, "/v1/admin/sync", http.NoBody))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.Contains(t, anon.Body.String(), "authentication required")

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/sync", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	authed := httptest.NewRecorder()
	handler.ServeHTTP(authed, req)
	assert.Equal(t, http.StatusOK, authed.Code)
}

func TestGetUserID_NoIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/treks", http.NoBody)
	assert.Empty(t, middleware.GetUserID(req.Context()))
	assert.False(t, middleware.IsAnonymous(req.Context()))
}
