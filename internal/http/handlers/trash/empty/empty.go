// Package empty реализует HTTP-обработчик безвозвратной очистки корзины.
//
// Очистка пустой корзины считается ошибкой и возвращает 404.
package empty

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Handler обрабатывает запросы очистки корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает очистку корзины.
type Service interface {
	EmptyTrash(ctx context.Context, email string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP очищает корзину текущего пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trash.empty"
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

	err := h.service.EmptyTrash(r.Context(), email)
	if errors.Is(err, models.ErrTrashEmpty) {
		log.Info("trash already empty")
		response.WriteError(w, r, http.StatusNotFound, "trash is already empty")
		return
	}
	if err != nil {
		log.Error("failed to empty trash", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not empty trash")
		return
	}

	log.Info("trash emptied")
	render.JSON(w, r, response.OK())
}
