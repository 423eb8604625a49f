package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	svc, err := newSessionTokenService(testSecret, fixedClock(now))
	require.NoError(t, err)

	session, err := domain.NewSession(42, now, time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(context.Background(), session)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, claims.SessionID)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, session.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
}

func TestSessionTokenParseFailures(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	issuer, err := newSessionTokenService(testSecret, fixedClock(now))
	require.NoError(t, err)
	session, err := domain.NewSession(7, now, time.Hour)
	require.NoError(t, err)
	token, err := issuer.Issue(context.Background(), session)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ID:        session.ID.String(),
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.ID.String(),
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:      session.ID.String(),
		Subject: "7",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		now     time.Time
		token   string
		wantErr error
	}{
		{"empty", testSecret, now, "", ErrMissingToken},
		{"garbage", testSecret, now, "not.a.token", ErrInvalidToken},
		{"wrong secret", "another-secret-that-is-long-enough-too", now, token, ErrInvalidToken},
		{"expired", testSecret, now.Add(2 * time.Hour), token, ErrExpiredToken},
		{"unsigned", testSecret, now, noneToken, ErrInvalidToken},
		{"non-numeric subject", testSecret, now, badSubject, ErrInvalidToken},
		{"missing expiry", testSecret, now, noExpiry, ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := newSessionTokenService(tt.secret, fixedClock(tt.now))
			require.NoError(t, err)

			_, err = svc.Parse(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionTokenToleratesClockSkew(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	svc, err := newSessionTokenService(testSecret, fixedClock(now.Add(time.Hour+10*time.Second)))
	require.NoError(t, err)
	session, err := domain.NewSession(7, now, time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(context.Background(), session)
	require.NoError(t, err)

	_, err = svc.Parse(context.Background(), token)
	assert.NoError(t, err)
}

func TestNewSessionTokenServiceRequiresLongSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSessionTokenService(config.AuthConfig{SessionSecret: "short"})
	assert.Error(t, err)

	svc, err := NewSessionTokenService(config.AuthConfig{SessionSecret: testSecret})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
