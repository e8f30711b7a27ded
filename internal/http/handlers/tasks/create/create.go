// Package create реализует HTTP-обработчик для добавления задачи в список пользователя.
//
// Handler принимает JSON с текстом и необязательным сроком, извлекает email пользователя из контекста
// и вызывает бизнес-логику добавления. Успешное добавление отвечает 201 Created.
package create

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

// Request входные данные новой задачи. DueDate в формате YYYY-MM-DD или пустой.
type Request struct {
	Text    string `json:"text" validate:"required"`
	DueDate string `json:"due_date"`
}

// Handler управляет HTTP-запросами на добавление задач.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики задач
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики добавления задачи.
type Service interface {
	AddTask(ctx context.Context, email, text, dueDate string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP добавляет задачу текущему пользователю.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tasks.create"
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

	err := h.service.AddTask(r.Context(), email, req.Text, req.DueDate)
	if errors.Is(err, models.ErrValidation) {
		log.Info("task rejected", sl.Err(err))
		response.WriteError(w, r, http.StatusUnprocessableEntity, "task text is empty or due date is not YYYY-MM-DD")
		return
	}
	if err != nil {
		log.Error("failed to add task", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "could not add task")
		return
	}

	log.Info("task added")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"text":     req.Text,
		"due_date": req.DueDate,
	}))
}
