// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает JSON с именем, email, телефоном и паролем, проверяет наличие полей,
// передаёт кандидата сервису и отображает отказ проверки формата в 422,
// а занятый email или телефон в 409.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/task-tracker/internal/http/response"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/validation"
)

// Request — структура входных данных для регистрации.
// Формат полей проверяет сервис, здесь проверяется только их наличие.
type Request struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис регистрации пользователей
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, u models.User) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP регистрирует пользователя и возвращает его имя и email.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.Register(r.Context(), models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		var fieldErr *validation.FieldError
		switch {
		case errors.As(err, &fieldErr):
			log.Info("registration rejected", sl.Err(err))
			response.WriteError(w, r, http.StatusUnprocessableEntity, fieldErr.Error())
		case errors.Is(err, models.ErrValidation):
			log.Info("registration rejected", sl.Err(err))
			response.WriteError(w, r, http.StatusUnprocessableEntity, "invalid user data")
		case errors.Is(err, models.ErrEmailTaken):
			log.Info("user already exists", sl.Err(err))
			response.WriteError(w, r, http.StatusConflict, "user with this email already exists")
		case errors.Is(err, models.ErrPhoneTaken):
			log.Info("user already exists", sl.Err(err))
			response.WriteError(w, r, http.StatusConflict, "user with this phone already exists")
		case errors.Is(err, models.ErrConflict):
			log.Info("user already exists", sl.Err(err))
			response.WriteError(w, r, http.StatusConflict, "user already exists")
		default:
			log.Error("failed to register user", sl.Err(err))
			response.WriteError(w, r, http.StatusInternalServerError, "internal error")
		}
		return
	}

	log.Info("user registered")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"name":  req.Name,
		"email": req.Email,
	}))
}
