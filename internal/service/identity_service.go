package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/studytrack/internal/domain"
	"github.com/phrazzld/studytrack/internal/platform/logger"
	"github.com/phrazzld/studytrack/internal/service/auth"
	"github.com/phrazzld/studytrack/internal/store"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// IdentityService registers users and manages their sessions.
type IdentityService interface {
	// Register creates a user and returns its ID.
	// Returns ErrValidation for bad input and ErrConflict when the username
	// or email is already taken.
	Register(ctx context.Context, username, email, password string) (int64, error)

	// Login checks the credentials and starts a session.
	// Returns ErrAuth for an unknown user or a wrong password.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// CurrentUser resolves a session token to the user ID it belongs to.
	// Returns auth.ErrUnauthenticated when the token or its session is not valid.
	CurrentUser(ctx context.Context, token string) (int64, error)

	// Logout ends the session the token belongs to. Ending a session that
	// is already gone succeeds.
	Logout(ctx context.Context, token string) error

	// GetUser returns the user with the given ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// IdentityConfig holds the session settings of the identity service.
type IdentityConfig struct {
	SessionLifetime time.Duration
}

type identityServiceImpl struct {
	users    store.UserStore
	sessions store.SessionStore
	hasher   auth.PasswordHasher
	tokens   auth.SessionTokenService
	db       *sql.DB
	cfg      IdentityConfig
	logger   *slog.Logger
	now      func() time.Time

	// dummyHash is verified against when the username is unknown, so a
	// failed login costs the same either way.
	dummyHash string
}

// NewIdentityService creates an IdentityService.
func NewIdentityService(
	users store.UserStore,
	sessions store.SessionStore,
	hasher auth.PasswordHasher,
	tokens auth.SessionTokenService,
	db *sql.DB,
	cfg IdentityConfig,
	logger *slog.Logger,
) (IdentityService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if cfg.SessionLifetime <= 0 {
		return nil, domain.NewValidationError("session_lifetime", "must be positive", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummyHash, err := hasher.Hash("studytrack-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}

	return &identityServiceImpl{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		tokens:    tokens,
		db:        db,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "identity_service")),
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

// Register implements IdentityService.Register
func (s *identityServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		log.Debug("registration rejected", slog.String("reason", err.Error()))
		return 0, validationError(err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return 0, NewServiceError("identity", "register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	// Uniqueness is left to the database constraints so concurrent
	// registrations of the same name resolve to exactly one row.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			log.Debug("username already taken", slog.String("username", user.Username))
			return 0, fmt.Errorf("%w: %w", ErrConflict, err)
		case errors.Is(err, store.ErrEmailExists):
			log.Debug("email already registered")
			return 0, fmt.Errorf("%w: %w", ErrConflict, err)
		case store.IsDuplicateError(err):
			return 0, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		log.Error("failed to create user", slog.String("error", err.Error()))
		return 0, NewServiceError("identity", "register", "failed to create user", err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return user.ID, nil
}

// Login implements IdentityService.Login
func (s *identityServiceImpl) Login(
	ctx context.Context,
	username, password string,
) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Stored usernames are trimmed at registration.
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if store.IsNotFoundError(err) {
			s.hasher.Verify(password, s.dummyHash)
			log.Debug("login failed: unknown username")
			return nil, ErrAuth
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return nil, NewServiceError("identity", "login", "failed to look up user", err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		log.Debug("login failed: wrong password", slog.Int64("user_id", user.ID))
		return nil, ErrAuth
	}

	session, err := domain.NewSession(user.ID, s.now(), s.cfg.SessionLifetime)
	if err != nil {
		return nil, NewServiceError("identity", "login", "failed to create session", err)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		log.Error("failed to persist session", slog.String("error", err.Error()))
		return nil, NewServiceError("identity", "login", "failed to persist session", err)
	}

	token, err := s.tokens.Issue(ctx, session)
	if err != nil {
		// Do not leave a session nobody holds a token for.
		if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
			log.Warn("failed to remove orphaned session", slog.String("error", delErr.Error()))
		}
		return nil, NewServiceError("identity", "login", "failed to issue token", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &LoginResult{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// CurrentUser implements IdentityService.CurrentUser
func (s *identityServiceImpl) CurrentUser(ctx context.Context, token string) (int64, error) {
	session, err := s.resolveSession(ctx, token)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}

// Logout implements IdentityService.Logout
func (s *identityServiceImpl) Logout(ctx context.Context, token string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %w", auth.ErrUnauthenticated, err)
	}

	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		log.Error("failed to delete session", slog.String("error", err.Error()))
		return NewServiceError("identity", "logout", "failed to delete session", err)
	}

	log.Info("user logged out", slog.Int64("user_id", claims.UserID))
	return nil
}

// GetUser implements IdentityService.GetUser
func (s *identityServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, NewServiceError("identity", "get_user", "failed to look up user", err)
	}
	return user, nil
}

// resolveSession requires both a valid token signature and a live
// persisted session that matches it.
func (s *identityServiceImpl) resolveSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrMissingToken)
	}

	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrUnauthenticated, err)
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: session ended", auth.ErrUnauthenticated)
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load session",
			slog.String("error", err.Error()))
		return nil, NewServiceError("identity", "current_user", "failed to load session", err)
	}

	if session.UserID != claims.UserID || session.IsExpired(s.now()) {
		return nil, fmt.Errorf("%w: session does not match token", auth.ErrUnauthenticated)
	}
	return session, nil
}
