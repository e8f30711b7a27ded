// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка полей и делегирование входа сервису пользователей.
// При успешной аутентификации возвращается JSON с JWT, именем и email пользователя;
// в случае ошибок формируются соответствующие HTTP-ответы.
package login

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
)

// Request — структура входных данных для авторизации.
//
// EmailOrPhone сравнивается и с email, и с телефоном зарегистрированных пользователей.
type Request struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации пользователей
	tokens   TokenMaker          // Выпуск JWT для веб-сессии
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Authenticate(ctx context.Context, identifier, password string) (*models.User, error)
}

// TokenMaker выпускает JWT для аутентифицированного пользователя.
type TokenMaker interface {
	GenerateToken(email, name string) (string, error)
}

// New создает новый экземпляр Handler с указанными логгером, сервисом и генератором токенов.
//
// Инициализирует валидатор для проверки структур.
func New(log *slog.Logger, service Service, tokens TokenMaker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ServeHTTP аутентифицирует пользователя и выдаёт токен.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.EmailOrPhone, req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		log.Info("login rejected")
		response.WriteError(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.tokens.GenerateToken(user.Email, user.Name)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("login success")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
		"name":  user.Name,
		"email": user.Email,
	}))
}
