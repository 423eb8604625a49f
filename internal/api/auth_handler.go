package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/studytrack/internal/api/middleware"
	"github.com/phrazzld/studytrack/internal/api/shared"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/service"
)

// AuthHandler handles registration, login, logout and the current user.
type AuthHandler struct {
	identity     service.IdentityService
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. cookieSecure sets the Secure
// attribute on the session cookie.
func NewAuthHandler(
	identity service.IdentityService,
	cookieSecure bool,
	logger *slog.Logger,
) *AuthHandler {
	if identity == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("identity service cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		identity:     identity,
		cookieSecure: cookieSecure,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	userID, err := h.identity.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{UserID: userID})
}

// Login handles POST /api/auth/login. The session token is returned in the
// body and set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	res, err := h.identity.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to log in")
		return
	}

	http.SetCookie(w, h.sessionCookie(res.Token, res.ExpiresAt))
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		UserID:    res.UserID,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout. It ends the session and clears the
// cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token, err := middleware.TokenFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.identity.Logout(r.Context(), token); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}

	http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0)))
	log.Debug("session cookie cleared")
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.identity.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
