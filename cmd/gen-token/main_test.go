package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/trello-manager/internal/config"
	"github.com/phrazzld/trello-manager/internal/service/auth"
)

func TestGenerate(t *testing.T) {
	const secret = "a-test-secret-that-is-at-least-32-chars"
	t.Setenv("TRELLO_STORAGE_DRIVER", "memory")
	t.Setenv("TRELLO_AUTH_JWT_SECRET", secret)

	token, err := generate(context.Background(), "ci")
	require.NoError(t, err)

	svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: secret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ci", claims.Subject)
}

func TestGenerateWithoutSecret(t *testing.T) {
	t.Setenv("TRELLO_STORAGE_DRIVER", "memory")
	t.Setenv("TRELLO_AUTH_JWT_SECRET", "")

	_, err := generate(context.Background(), "ci")
	assert.ErrorContains(t, err, "jwt_secret")
}
