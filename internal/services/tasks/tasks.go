// Package tasks содержит бизнес-логику списков задач: добавление, фильтрацию,
// переключение статуса, перенос в корзину, восстановление и очистку корзины.
// Задачи и корзина хранятся по email владельца.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/storage"
)

// urgentWindowDays срок в днях, начиная с сегодняшнего, в который задача считается срочной.
const urgentWindowDays = 3

// Store описывает файловое хранилище коллекций.
type Store interface {
	// Load читает ресурс в v, v заранее содержит значение по умолчанию.
	Load(ctx context.Context, res storage.Resource, v any) error
	// Save перезаписывает ресурс целиком.
	Save(ctx context.Context, res storage.Resource, v any) error
}

// Service хранит задачи и корзину всех пользователей в памяти.
// Каждое изменение сопровождается полной перезаписью затронутых коллекций.
type Service struct {
	mu    sync.Mutex
	store Store
	log   *slog.Logger
	now   func() time.Time
	tasks map[string][]models.Task
	trash map[string][]models.Task
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создает новый экземпляр Service. Перед использованием нужно вызвать Load.
func NewService(store Store, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   log,
		now:   time.Now,
		tasks: map[string][]models.Task{},
		trash: map[string][]models.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load загружает коллекции задач и корзины из хранилища.
func (s *Service) Load(ctx context.Context) error {
	const op = "tasks.Load"

	tasks := map[string][]models.Task{}
	if err := s.store.Load(ctx, storage.Tasks, &tasks); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	trash := map[string][]models.Task{}
	if err := s.store.Load(ctx, storage.Trash, &trash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.trash = trash
	s.mu.Unlock()

	s.log.Info("tasks loaded", sl.Op(op), slog.Int("users", len(tasks)), slog.Int("trash_users", len(trash)))
	return nil
}

// EnsureList заводит пустой список задач, если у пользователя его ещё нет.
func (s *Service) EnsureList(ctx context.Context, email string) error {
	const op = "tasks.EnsureList"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[email]; ok {
		return nil
	}
	s.tasks[email] = []models.Task{}
	if err := s.store.Save(ctx, storage.Tasks, &s.tasks); err != nil {
		delete(s.tasks, email)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("task list provisioned", sl.Op(op))
	return nil
}

// Add добавляет невыполненную задачу в конец списка пользователя.
// dueDate либо пустая строка, либо дата в формате YYYY-MM-DD.
func (s *Service) Add(ctx context.Context, email, text, dueDate string) error {
	const op = "tasks.Add"
	log := s.log.With(sl.Op(op))

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%s: empty text: %w", op, models.ErrValidation)
	}

	var due *string
	if dueDate = strings.TrimSpace(dueDate); dueDate != "" {
		if _, err := time.Parse(models.DueDateLayout, dueDate); err != nil {
			return fmt.Errorf("%s: due date %q: %w", op, dueDate, models.ErrValidation)
		}
		due = &dueDate
	}

	task := models.Task{
		Text:      text,
		Completed: false,
		CreatedAt: s.now().Format(models.CreatedAtLayout),
		DueDate:   due,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.tasks[email]
	s.tasks[email] = append(prev, task)
	if err := s.store.Save(ctx, storage.Tasks, &s.tasks); err != nil {
		if existed {
			s.tasks[email] = prev
		} else {
			delete(s.tasks, email)
		}
		log.Error("failed to save tasks", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("task added", slog.Int("count", len(s.tasks[email])))
	return nil
}

// List возвращает копии задач пользователя, отобранные фильтром, в порядке добавления.
func (s *Service) List(email string, filter models.Filter) []models.TaskView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	res := make([]models.TaskView, 0, len(s.tasks[email]))
	for _, t := range s.tasks[email] {
		view := models.TaskView{
			Task:    t,
			Urgent:  isUrgent(t, now),
			Overdue: isOverdue(t, now),
		}
		if matches(view, filter) {
			res = append(res, view)
		}
	}
	return res
}

// IsUrgent сообщает, наступает ли срок задачи в ближайшие дни, начиная с сегодняшнего.
func (s *Service) IsUrgent(t models.Task) bool {
	return isUrgent(t, s.now())
}

// IsOverdue сообщает, прошёл ли срок задачи.
func (s *Service) IsOverdue(t models.Task) bool {
	return isOverdue(t, s.now())
}

// Toggle переключает статус первой задачи с таким текстом.
func (s *Service) Toggle(ctx context.Context, email, text string) error {
	const op = "tasks.Toggle"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.tasks[email], text)
	if i < 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.tasks[email][i].Completed = !s.tasks[email][i].Completed

	if err := s.store.Save(ctx, storage.Tasks, &s.tasks); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("task toggled", sl.Op(op), slog.Bool("completed", s.tasks[email][i].Completed))
	return nil
}

// Delete переносит первую задачу с таким текстом в корзину пользователя.
func (s *Service) Delete(ctx context.Context, email, text string) error {
	const op = "tasks.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := take(s.tasks, email, text)
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.trash[email] = append(s.trash[email], task)

	if err := s.saveBoth(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("task moved to trash", sl.Op(op), slog.Int("trash", len(s.trash[email])))
	return nil
}

// Restore возвращает первую задачу с таким текстом из корзины в конец списка.
func (s *Service) Restore(ctx context.Context, email, text string) error {
	const op = "tasks.Restore"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := take(s.trash, email, text)
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.tasks[email] = append(s.tasks[email], task)

	if err := s.saveBoth(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("task restored", sl.Op(op), slog.Int("trash", len(s.trash[email])))
	return nil
}

// EmptyTrash безвозвратно удаляет задачи из корзины. Для пустой корзины возвращает models.ErrTrashEmpty.
func (s *Service) EmptyTrash(ctx context.Context, email string) error {
	const op = "tasks.EmptyTrash"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.trash[email])
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrTrashEmpty)
	}
	s.trash[email] = []models.Task{}

	if err := s.store.Save(ctx, storage.Trash, &s.trash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trash emptied", sl.Op(op), slog.Int("purged", n))
	return nil
}

// TrashCount возвращает количество задач в корзине пользователя.
func (s *Service) TrashCount(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trash[email])
}

// Trash возвращает копию корзины пользователя.
func (s *Service) Trash(email string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]models.Task, len(s.trash[email]))
	copy(res, s.trash[email])
	return res
}

// saveBoth сбрасывает на диск задачи и корзину. Сбой между двумя записями оставляет файлы рассогласованными.
func (s *Service) saveBoth(ctx context.Context) error {
	if err := s.store.Save(ctx, storage.Tasks, &s.tasks); err != nil {
		return err
	}
	return s.store.Save(ctx, storage.Trash, &s.trash)
}

func matches(v models.TaskView, filter models.Filter) bool {
	switch filter {
	case models.FilterActive:
		return !v.Completed
	case models.FilterCompleted:
		return v.Completed
	case models.FilterUrgent:
		return !v.Completed && (v.Urgent || v.Overdue)
	case models.FilterOverdue:
		return !v.Completed && v.Overdue
	default:
		return true
	}
}

// daysUntil возвращает число календарных дней от сегодняшнего дня до срока задачи.
func daysUntil(t models.Task, now time.Time) (int, bool) {
	due, ok := t.Due()
	if !ok {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24), true
}

func isUrgent(t models.Task, now time.Time) bool {
	days, ok := daysUntil(t, now)
	return ok && days >= 0 && days <= urgentWindowDays
}

func isOverdue(t models.Task, now time.Time) bool {
	days, ok := daysUntil(t, now)
	return ok && days < 0
}

func indexOf(list []models.Task, text string) int {
	for i, t := range list {
		if t.Text == text {
			return i
		}
	}
	return -1
}

// take вырезает первую задачу с таким текстом из списка пользователя.
func take(lists map[string][]models.Task, email, text string) (models.Task, bool) {
	list := lists[email]
	i := indexOf(list, text)
	if i < 0 {
		return models.Task{}, false
	}
	task := list[i]
	rest := make([]models.Task, 0, len(list)-1)
	rest = append(rest, list[:i]...)
	rest = append(rest, list[i+1:]...)
	lists[email] = rest
	return task, true
}
