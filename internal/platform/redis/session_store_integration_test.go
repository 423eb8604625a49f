//go:build integration

package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sessions := NewSessionStore(client, nil)
	session, err := domain.NewSession(7, time.Now(), time.Minute)
	require.NoError(t, err)

	require.NoError(t, sessions.Create(ctx, session))

	got, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)

	ttl, err := client.TTL(ctx, sessionKey(session.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, sessions.Delete(ctx, session.ID))
	_, err = sessions.Get(ctx, session.ID)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}
