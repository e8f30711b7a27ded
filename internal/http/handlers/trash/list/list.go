// Package list реализует HTTP-обработчик просмотра корзины пользователя.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Handler обрабатывает запросы содержимого корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение корзины.
type Service interface {
	ListTrash(email string) []models.Task
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает задачи из корзины и их количество.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trash.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := middlewarectx.UserEmail(r.Context())
	if !ok {
		log.Error("email not found in context")
		response.WriteError(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	trash := h.service.ListTrash(email)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"tasks": trash,
		"count": len(trash),
	}))
}
