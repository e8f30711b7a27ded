// Package list реализует HTTP-обработчик получения задач пользователя с фильтром.
//
// Фильтр передаётся параметром запроса filter (all, active, completed, urgent, overdue),
// неизвестное значение трактуется как all. Вместе со списком возвращается размер корзины.
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

// Handler обрабатывает запросы списка задач.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение задач пользователя.
type Service interface {
	ListTasks(email string, filter models.Filter) []models.TaskView
	TrashCount(email string) int
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает задачи текущего пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tasks.list"
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

	filter := models.ParseFilter(r.URL.Query().Get("filter"))
	tasks := h.service.ListTasks(email, filter)

	log.Debug("tasks listed", slog.String("filter", string(filter)), slog.Int("count", len(tasks)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"filter":      filter,
		"tasks":       tasks,
		"trash_count": h.service.TrashCount(email),
	}))
}
