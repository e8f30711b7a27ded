package toggle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// MockService реализует интерфейс toggle.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ToggleTask(ctx context.Context, email, text string) error {
	args := m.Called(ctx, email, text)
	return args.Error(0)
}

func TestToggleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		email          string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешно",
			email: "a@b.co",
			body:  `{"text":"Buy milk"}`,
			setupMock: func(m *MockService) {
				m.On("ToggleTask", mock.Anything, "a@b.co", "Buy milk").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"text":"Buy milk"}}`,
		},
		{
			name:  "задача не найдена",
			email: "a@b.co",
			body:  `{"text":"nope"}`,
			setupMock: func(m *MockService) {
				m.On("ToggleTask", mock.Anything, "a@b.co", "nope").
					Return(fmt.Errorf("op: %w", models.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"task not found"}`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"text":"Buy milk"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "битый json",
			email:          "a@b.co",
			body:           `text=Buy milk`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустой текст",
			email:          "a@b.co",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Text is a required field"}`,
		},
		{
			name:  "ошибка сохранения",
			email: "a@b.co",
			body:  `{"text":"Buy milk"}`,
			setupMock: func(m *MockService) {
				m.On("ToggleTask", mock.Anything, "a@b.co", "Buy milk").Return(errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not toggle task"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/tasks/toggle", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.email != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.email)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
