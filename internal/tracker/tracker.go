// Package tracker собирает справочник пользователей и списки задач в единый объект,
// через который работают веб- и консольный интерфейсы.
// Tracker создаётся один раз при запуске процесса и передаётся адаптерам явно.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/task-tracker/internal/lib/password"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/services/tasks"
	"github.com/magabrotheeeer/task-tracker/internal/services/users"
	"github.com/magabrotheeeer/task-tracker/internal/storage"
)

// Store хранилище трёх коллекций: пользователей, задач и корзины.
type Store interface {
	Load(ctx context.Context, res storage.Resource, v any) error
	Save(ctx context.Context, res storage.Resource, v any) error
}

// Options необязательные зависимости Tracker.
type Options struct {
	Hasher  password.Hasher  // По умолчанию пароли сравниваются как есть
	Metrics *metrics.Metrics // nil отключает учёт операций
	Clock   func() time.Time // Источник текущего времени для сроков задач
}

// Tracker предоставляет операции над пользователями и задачами.
type Tracker struct {
	users   *users.Service
	tasks   *tasks.Service
	metrics *metrics.Metrics
	log     *slog.Logger
}

// New создаёт Tracker и загружает пользователей, задачи и корзину из store.
func New(ctx context.Context, store Store, log *slog.Logger, opts Options) (*Tracker, error) {
	const op = "tracker.New"

	if opts.Hasher == nil {
		opts.Hasher = password.Plain{}
	}
	var taskOpts []tasks.Option
	if opts.Clock != nil {
		taskOpts = append(taskOpts, tasks.WithClock(opts.Clock))
	}

	taskService := tasks.NewService(store, log, taskOpts...)
	if err := taskService.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	userService := users.NewService(store, opts.Hasher, taskService, log)
	if err := userService.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tracker ready", sl.Op(op), slog.Int("users", userService.Count()))

	return &Tracker{
		users:   userService,
		tasks:   taskService,
		metrics: opts.Metrics,
		log:     log,
	}, nil
}

// Register регистрирует нового пользователя.
func (t *Tracker) Register(ctx context.Context, u models.User) error {
	err := t.users.Register(ctx, u)
	t.metrics.Observe("register", err)
	return err
}

// Authenticate проверяет email или телефон и пароль, возвращает найденного пользователя.
func (t *Tracker) Authenticate(ctx context.Context, identifier, rawPassword string) (*models.User, error) {
	user, err := t.users.Authenticate(ctx, identifier, rawPassword)
	t.metrics.Observe("authenticate", err)
	return user, err
}

// AddTask добавляет задачу пользователю. dueDate пустой, если срока нет.
func (t *Tracker) AddTask(ctx context.Context, email, text, dueDate string) error {
	err := t.tasks.Add(ctx, email, text, dueDate)
	t.metrics.Observe("add_task", err)
	return err
}

// ListTasks возвращает задачи пользователя, отобранные фильтром.
func (t *Tracker) ListTasks(email string, filter models.Filter) []models.TaskView {
	t.metrics.Observe("list_tasks", nil)
	return t.tasks.List(email, filter)
}

// ToggleTask переключает статус выполнения задачи.
func (t *Tracker) ToggleTask(ctx context.Context, email, text string) error {
	err := t.tasks.Toggle(ctx, email, text)
	t.metrics.Observe("toggle_task", err)
	return err
}

// DeleteTask переносит задачу в корзину.
func (t *Tracker) DeleteTask(ctx context.Context, email, text string) error {
	err := t.tasks.Delete(ctx, email, text)
	t.metrics.Observe("delete_task", err)
	return err
}

// RestoreTask возвращает задачу из корзины.
func (t *Tracker) RestoreTask(ctx context.Context, email, text string) error {
	err := t.tasks.Restore(ctx, email, text)
	t.metrics.Observe("restore_task", err)
	return err
}

// EmptyTrash очищает корзину пользователя.
func (t *Tracker) EmptyTrash(ctx context.Context, email string) error {
	err := t.tasks.EmptyTrash(ctx, email)
	t.metrics.Observe("empty_trash", err)
	return err
}

// TrashCount возвращает число задач в корзине.
func (t *Tracker) TrashCount(email string) int {
	return t.tasks.TrashCount(email)
}

// ListTrash возвращает содержимое корзины.
func (t *Tracker) ListTrash(email string) []models.Task {
	t.metrics.Observe("list_trash", nil)
	return t.tasks.Trash(email)
}

// UserCount возвращает число зарегистрированных пользователей.
func (t *Tracker) UserCount() int {
	return t.users.Count()
}
