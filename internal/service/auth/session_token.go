package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
)

// minSecretLength is the shortest accepted HMAC signing secret.
const minSecretLength = 32

// SessionTokenService signs session tokens and parses them back.
//
// A token only proves which session it was issued for. Callers must still
// check that the session exists, since logging out deletes it before the
// token expires.
type SessionTokenService interface {
	// Issue creates a signed token for session.
	Issue(ctx context.Context, session *domain.Session) (string, error)

	// Parse validates the signature and expiry of token and returns its claims.
	// Returns ErrInvalidToken or ErrExpiredToken on failure.
	Parse(ctx context.Context, token string) (*Claims, error)
}

// Claims is the information carried by a session token.
type Claims struct {
	SessionID uuid.UUID
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// hmacSessionTokenService implements SessionTokenService using HMAC-SHA256 JWTs.
// The JWT ID is the session ID and the subject is the user ID.
type hmacSessionTokenService struct {
	signingKey []byte
	timeFunc   func() time.Time
	clockSkew  time.Duration
}

// Ensure hmacSessionTokenService implements SessionTokenService interface
var _ SessionTokenService = (*hmacSessionTokenService)(nil)

// NewSessionTokenService creates a SessionTokenService signing with cfg.SessionSecret.
func NewSessionTokenService(cfg config.AuthConfig) (SessionTokenService, error) {
	return newSessionTokenService(cfg.SessionSecret, time.Now)
}

func newSessionTokenService(secret string, timeFunc func() time.Time) (*hmacSessionTokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d characters", minSecretLength)
	}
	return &hmacSessionTokenService{
		signingKey: []byte(secret),
		timeFunc:   timeFunc,
		clockSkew:  30 * time.Second,
	}, nil
}

// Issue implements SessionTokenService.Issue
func (s *hmacSessionTokenService) Issue(ctx context.Context, session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID.String(),
		Subject:   strconv.FormatInt(session.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(s.timeFunc()),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign session token",
			"error", err,
			"user_id", session.UserID)
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse implements SessionTokenService.Parse
func (s *hmacSessionTokenService) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	var registered jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&registered,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("session token expired")
			return nil, ErrExpiredToken
		}
		log.Debug("session token rejected", "error_type", fmt.Sprintf("%T", err))
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(registered.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		SessionID: sessionID,
		UserID:    userID,
		ExpiresAt: registered.ExpiresAt.Time,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	return claims, nil
}
