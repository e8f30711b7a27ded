// Package remove реализует HTTP-обработчик переноса задачи в корзину.
//
// Задача не удаляется безвозвратно: её можно вернуть через обработчик trash/restore.
package remove

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Request содержит текст задачи, по которому она ищется.
type Request struct {
	Text string `json:"text" validate:"required"`
}

// Handler обрабатывает запросы к задаче по её тексту.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает перенос задачи в корзину.
type Service interface {
	DeleteTask(ctx context.Context, email, text string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP переносит задачу текущего пользователя в корзину.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tasks.remove"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.DeleteTask(r.Context(), email, req.Text)
	if errors.Is(err, models.ErrNotFound) {
		log.Info("task not found")
		response.WriteError(w, r, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		log.Error("could not delete task", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not delete task")
		return
	}

	log.Info("task moved to trash")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"text": req.Text,
	}))
}
