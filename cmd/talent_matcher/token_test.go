package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/server"
)

const testSecret = "test-secret-key-for-jwt-signing"

func TestTokenCommand(t *testing.T) {
	t.Setenv("MATCHER_AUTH_JWT_SECRET", testSecret)

	out, err := execute(t, "token", "--subject", "ats-sync")
	require.NoError(t, err)

	jwtSvc := server.NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "talent-matcher", ExpirationHours: 24})
	claims, err := jwtSvc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ats-sync", claims.GetSubject())
	assert.Equal(t, server.ScopeInvalidate, claims.GetScope())
}

func TestTokenCommand_CustomScope(t *testing.T) {
	t.Setenv("MATCHER_AUTH_JWT_SECRET", testSecret)

	out, err := execute(t, "token", "--subject", "ops", "--scope", "read")
	require.NoError(t, err)

	claims, err := server.NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "talent-matcher", ExpirationHours: 1}).
		ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "read", claims.GetScope())
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("MATCHER_AUTH_JWT_SECRET", "")

	_, err := execute(t, "token", "--subject", "ats-sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
