package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/service/auth"
)

// MockSessionTokenService implements auth.SessionTokenService. By default
// it issues opaque tokens and parses back only tokens it issued itself.
type MockSessionTokenService struct {
	IssueFn func(ctx context.Context, session *domain.Session) (string, error)
	ParseFn func(ctx context.Context, token string) (*auth.Claims, error)

	mu     sync.Mutex
	issued map[string]auth.Claims
}

// NewMockSessionTokenService creates a MockSessionTokenService.
func NewMockSessionTokenService() *MockSessionTokenService {
	return &MockSessionTokenService{issued: make(map[string]auth.Claims)}
}

// Issue implements auth.SessionTokenService
func (m *MockSessionTokenService) Issue(ctx context.Context, session *domain.Session) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, session)
	}

	token := "token-" + uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.issued == nil {
		m.issued = make(map[string]auth.Claims)
	}
	m.issued[token] = auth.Claims{
		SessionID: session.ID,
		UserID:    session.UserID,
		IssuedAt:  session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	return token, nil
}

// Parse implements auth.SessionTokenService
func (m *MockSessionTokenService) Parse(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ParseFn != nil {
		return m.ParseFn(ctx, token)
	}
	if token == "" {
		return nil, auth.ErrMissingToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	claims, ok := m.issued[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &claims, nil
}
