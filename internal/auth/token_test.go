// AngelaMos | 2026
// token_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/config"
	"github.com/smartcityfix/api/internal/core"
)

func newTestTokenManager(t *testing.T, expire time.Duration) *TokenManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "session.pem")
	publicPath := filepath.Join(dir, "session.pub.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewTokenManager(config.SessionConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		Expire:         expire,
		Issuer:         "smartcityfix",
		Audience:       "smartcityfix-api",
	})
	require.NoError(t, err)

	return manager
}

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := newTestTokenManager(t, time.Hour)

	token, expiresAt, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID:    "user-1",
		Role:      "user",
		SessionID: "session-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := manager.VerifySessionToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestSessionTokenExpired(t *testing.T) {
	manager := newTestTokenManager(t, -time.Minute)

	token, _, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID:    "user-1",
		Role:      "user",
		SessionID: "session-1",
	})
	require.NoError(t, err)

	_, err = manager.VerifySessionToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestSessionTokenTampered(t *testing.T) {
	manager := newTestTokenManager(t, time.Hour)

	token, _, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID:    "user-1",
		Role:      "user",
		SessionID: "session-1",
	})
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = manager.VerifySessionToken(context.Background(), tampered)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestSessionTokenWrongKey(t *testing.T) {
	signer := newTestTokenManager(t, time.Hour)
	verifier := newTestTokenManager(t, time.Hour)

	token, _, err := signer.CreateSessionToken(SessionTokenClaims{
		UserID:    "user-1",
		Role:      "admin",
		SessionID: "session-1",
	})
	require.NoError(t, err)

	_, err = verifier.VerifySessionToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestSessionTokenGarbage(t *testing.T) {
	manager := newTestTokenManager(t, time.Hour)

	_, err := manager.VerifySessionToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenManagerKeyID(t *testing.T) {
	manager := newTestTokenManager(t, time.Hour)
	assert.NotEmpty(t, manager.GetKeyID())
}
