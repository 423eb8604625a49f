// Package middleware provides the HTTP middleware of the API: session
// authentication and request tracing.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/redact"
	"github.com/phrazzld/studytrack/internal/service/auth"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "studytrack_session"

// SessionResolver resolves a session token to the user it belongs to.
// service.IdentityService satisfies it.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (int64, error)
}

// AuthMiddleware guards routes that require a logged-in user.
type AuthMiddleware struct {
	sessions SessionResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession resolves the request's session token and puts the acting
// user's ID in the request context. Requests without a live session are
// rejected with 401 before reaching next.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := TokenFromRequest(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Login required")
			return
		}

		userID, err := m.sessions.CurrentUser(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Login required", err)
				return
			}
			logger.FromContext(r.Context()).Error("failed to resolve session",
				slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.Int64("user_id", userID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest returns the session token from a Bearer Authorization
// header or, failing that, from the session cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", auth.ErrInvalidToken
		}
		return strings.TrimSpace(token), nil
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", auth.ErrMissingToken
	}
	return cookie.Value, nil
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (int64, bool) {
	return shared.UserIDFromContext(r.Context())
}
