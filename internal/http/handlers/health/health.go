// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/http/response"
)

// Service сообщает сведения о состоянии трекера.
type Service interface {
	UserCount() int
}

// Handler отвечает на запросы /health.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	h.log.Debug("health check", slog.String("op", op))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
		"users":  h.service.UserCount(),
	}))
}
