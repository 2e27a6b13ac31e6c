package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/auth"
)

func newService(key, issuer, audience string) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: key,
		Issuer:     issuer,
		Audience:   audience,
	})
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	svc := newService("test-secret-key-for-testing-only", "trekscout", "trekscout-api")

	token, expiresAt, err := svc.GenerateAccessToken("user-42")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(auth.AccessTokenExpiry), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "trekscout", claims.Issuer)
}

func TestJWTService_GenerateRequiresUser(t *testing.T) {
	svc := newService("k", "trekscout", "trekscout-api")
	_, _, err := svc.GenerateAccessToken("")
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newService("test-secret-key-for-testing-only", "trekscout", "trekscout-api")

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
		})
	}
}

func TestJWTService_Mismatches(t *testing.T) {
	issuer := newService("key-one", "trekscout", "trekscout-api")
	token, _, err := issuer.GenerateAccessToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		verifier *auth.JWTService
	}{
		{"signing key", newService("key-two", "trekscout", "trekscout-api")},
		{"issuer", newService("key-one", "someone-else", "trekscout-api")},
		{"audience", newService("key-one", "trekscout", "another-api")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.ValidateAccessToken(token)
			assert.ErrorIs(t, err, auth.ErrInvalidAccessToken)
		})
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "k",
		Issuer:     "trekscout",
		Audience:   "trekscout-api",
		Expiry:     -time.Minute,
	})

	token, _, err := svc.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrAccessTokenExpired)
}

func TestJWTService_SubjectOnlyToken(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "trekscout",
		Subject:   "user-7",
		Audience:  jwt.ClaimStrings{"trekscout-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	claims, err := newService("k", "trekscout", "trekscout-api").ValidateAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)
}
