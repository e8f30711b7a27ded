// Package tracker собирает веб-приложение трекера задач: маршруты, middleware и HTTP-сервер.
package tracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/task-tracker/internal/http/handlers/health"
	taskcreate "github.com/magabrotheeeer/task-tracker/internal/http/handlers/tasks/create"
	tasklist "github.com/magabrotheeeer/task-tracker/internal/http/handlers/tasks/list"
	taskremove "github.com/magabrotheeeer/task-tracker/internal/http/handlers/tasks/remove"
	tasktoggle "github.com/magabrotheeeer/task-tracker/internal/http/handlers/tasks/toggle"
	trashempty "github.com/magabrotheeeer/task-tracker/internal/http/handlers/trash/empty"
	trashlist "github.com/magabrotheeeer/task-tracker/internal/http/handlers/trash/list"
	trashrestore "github.com/magabrotheeeer/task-tracker/internal/http/handlers/trash/restore"
	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/lib/jwt"
	core "github.com/magabrotheeeer/task-tracker/internal/tracker"
)

// RouteDeps зависимости, необходимые для регистрации маршрутов.
type RouteDeps struct {
	Tracker        *core.Tracker
	Tokens         *jwt.MakerImpl
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps RouteDeps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
	)

	tr := deps.Tracker

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, tr).ServeHTTP)
		r.Post("/login", login.New(logger, tr, deps.Tokens).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.Tokens, logger))
			r.Get("/tasks", tasklist.New(logger, tr).ServeHTTP)
			r.Post("/tasks", taskcreate.New(logger, tr).ServeHTTP)
			r.Post("/tasks/toggle", tasktoggle.New(logger, tr).ServeHTTP)
			r.Post("/tasks/delete", taskremove.New(logger, tr).ServeHTTP)
			r.Get("/trash", trashlist.New(logger, tr).ServeHTTP)
			r.Post("/trash/restore", trashrestore.New(logger, tr).ServeHTTP)
			r.Delete("/trash", trashempty.New(logger, tr).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, tr).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
}
