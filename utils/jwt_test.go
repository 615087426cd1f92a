package utils

import (
	"testing"
	"time"

	"nyumbani/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "customer", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestTokenSecretComesFromConfig(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	defer func() { config.AppConfig.JWTSecret = prev }()

	config.AppConfig.JWTSecret = "first-secret"
	token, err := GenerateToken("user-1", "a@example.com", "customer", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.NoError(t, err)

	// Rotating the configured secret invalidates tokens signed with the
	// old one.
	config.AppConfig.JWTSecret = "second-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "customer", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}
