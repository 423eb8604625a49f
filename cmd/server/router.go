package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/studytrack/internal/api"
	apiMiddleware "github.com/phrazzld/studytrack/internal/api/middleware"
	"github.com/phrazzld/studytrack/internal/api/shared"
)

const healthPingTimeout = 2 * time.Second

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.identity, app.config.Auth.CookieSecure, app.logger)
	taskHandler := api.NewTaskHandler(app.tasks, app.tags, app.logger)
	tagHandler := api.NewTagHandler(app.tags, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.identity)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireSession)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)

			r.Get("/tags", tagHandler.List)

			r.Get("/tasks", taskHandler.ListPending)
			r.Get("/tasks/completed", taskHandler.ListCompleted)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Edit)
			r.Post("/tasks/{id}/done", taskHandler.MarkDone)
			r.Get("/tasks/{id}/delete", taskHandler.PreviewDelete)
			r.Post("/tasks/{id}/delete", taskHandler.Delete)
		})
	})

	r.Get("/health", app.handleHealth)

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// handleHealth reports liveness and whether the database answers a ping.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("health check database ping failed", slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
			healthResponse{Status: "unavailable", Database: "unreachable"})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
