package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/studytrack/internal/config"
	"github.com/phrazzld/studytrack/internal/platform/postgres"
	"github.com/phrazzld/studytrack/internal/platform/redis"
	"github.com/phrazzld/studytrack/internal/service"
	"github.com/phrazzld/studytrack/internal/service/auth"
	"github.com/phrazzld/studytrack/internal/store"
)

// sessionSweepInterval is how often expired sessions are purged from the
// session store.
const sessionSweepInterval = 15 * time.Minute

// application holds the shared dependencies of the running server so they
// can be wired once and cleaned up together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *goredis.Client

	sessions store.SessionStore

	identity service.IdentityService
	tasks    service.TaskService
	tags     service.TagService
}

// newApplication wires stores and services and seeds the tag catalog.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	tagStore := postgres.NewPostgresTagStore(db, logger)

	var err error
	app.sessions, app.redis, err = newSessionStore(ctx, cfg, db, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewSessionTokenService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize session token service: %w", err)
	}

	app.identity, err = service.NewIdentityService(
		userStore,
		app.sessions,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		db,
		service.IdentityConfig{
			SessionLifetime: time.Duration(cfg.Auth.SessionLifetimeMinutes) * time.Minute,
		},
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create identity service: %w", err)
	}
	logger.Info("identity service initialized",
		slog.Int("session_lifetime_minutes", cfg.Auth.SessionLifetimeMinutes))

	app.tags, err = service.NewTagService(tagStore, db, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	app.tasks, err = service.NewTaskService(taskStore, tagStore, db, service.TaskConfig{
		PageSize:    cfg.Tasks.PageSize,
		MaxPageSize: cfg.Tasks.MaxPageSize,
	}, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if err := app.seedTags(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// newSessionStore returns the session store selected by session.backend.
// The Redis client is nil for the postgres backend.
func newSessionStore(
	ctx context.Context,
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
) (store.SessionStore, *goredis.Client, error) {
	switch cfg.Session.Backend {
	case "", "postgres":
		return postgres.NewPostgresSessionStore(db, logger), nil, nil
	case "redis":
		client, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to session Redis: %w", err)
		}
		logger.Info("using redis session backend")
		return redis.NewSessionStore(client, logger), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// seedTags creates the configured seed tags that do not exist yet.
func (app *application) seedTags(ctx context.Context) error {
	created, err := app.tags.EnsureSeedTags(ctx, app.config.Tags.Seed)
	if err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}
	app.logger.Info("tag catalog ready", slog.Int("created", created))
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	go app.sweepSessions(ctx, sessionSweepInterval)

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// sweepSessions purges expired sessions every interval until ctx is done.
func (app *application) sweepSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.sweepOnce(ctx, now)
		}
	}
}

func (app *application) sweepOnce(ctx context.Context, now time.Time) int64 {
	n, err := app.sessions.DeleteExpired(ctx, now)
	if err != nil {
		app.logger.Error("failed to purge expired sessions", slog.String("error", err.Error()))
		return 0
	}
	return n
}

// cleanup closes the database and Redis connections.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
