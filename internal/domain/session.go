package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Session
var (
	ErrEmptySessionID     = errors.New("session ID cannot be empty")
	ErrEmptySessionUserID = errors.New("session user ID cannot be empty")
	ErrInvalidSessionTTL  = errors.New("session must expire after it is created")
)

// Session is the persisted half of an authenticated identity. The signed
// token handed to the client carries the session ID; logging out removes
// the session, which invalidates the token even before it expires.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession creates a session for userID that lives for ttl from now.
func NewSession(userID int64, now time.Time, ttl time.Duration) (*Session, error) {
	s := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now.UTC(),
		ExpiresAt: now.UTC().Add(ttl),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Session has valid data.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}
	if s.UserID <= 0 {
		return ErrEmptySessionUserID
	}
	if !s.ExpiresAt.After(s.CreatedAt) {
		return ErrInvalidSessionTTL
	}
	return nil
}

// IsExpired reports whether the session has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
