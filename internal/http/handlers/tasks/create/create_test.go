package create

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

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddTask(ctx context.Context, email, text, dueDate string) error {
	args := m.Called(ctx, email, text, dueDate)
	return args.Error(0)
}

func TestCreateHandler(t *testing.T) {
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
			name:  "задача со сроком",
			email: "a@b.co",
			body:  `{"text":"Buy milk","due_date":"2099-01-01"}`,
			setupMock: func(m *MockService) {
				m.On("AddTask", mock.Anything, "a@b.co", "Buy milk", "2099-01-01").Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"text":"Buy milk"`,
		},
		{
			name:  "задача без срока",
			email: "a@b.co",
			body:  `{"text":"Walk dog"}`,
			setupMock: func(m *MockService) {
				m.On("AddTask", mock.Anything, "a@b.co", "Walk dog", "").Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"status":"OK"`,
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
			body:           `{"text":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустой текст",
			email:          "a@b.co",
			body:           `{"text":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Text is a required field`,
		},
		{
			name:  "текст из пробелов или неверная дата",
			email: "a@b.co",
			body:  `{"text":"   ","due_date":"tomorrow"}`,
			setupMock: func(m *MockService) {
				m.On("AddTask", mock.Anything, "a@b.co", "   ", "tomorrow").
					Return(fmt.Errorf("tasks.Add: %w", models.ErrValidation))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `due date is not YYYY-MM-DD`,
		},
		{
			name:  "ошибка сохранения",
			email: "a@b.co",
			body:  `{"text":"Buy milk"}`,
			setupMock: func(m *MockService) {
				m.On("AddTask", mock.Anything, "a@b.co", "Buy milk", "").Return(errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not add task"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.email != "" {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.email)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
