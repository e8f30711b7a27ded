// Package users содержит бизнес-логику справочника пользователей: регистрацию
// с проверкой полей и уникальности, а также вход по email или телефону.
package users

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/task-tracker/internal/lib/password"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/storage"
	"github.com/magabrotheeeer/task-tracker/internal/validation"
)

// Store описывает файловое хранилище коллекций.
type Store interface {
	// Load читает ресурс в v, v заранее содержит значение по умолчанию.
	Load(ctx context.Context, res storage.Resource, v any) error
	// Save перезаписывает ресурс целиком.
	Save(ctx context.Context, res storage.Resource, v any) error
}

// Provisioner заводит пустой список задач пользователю при первом входе.
type Provisioner interface {
	EnsureList(ctx context.Context, email string) error
}

// Service хранит коллекцию пользователей в памяти и сбрасывает её на диск после каждого изменения.
type Service struct {
	mu     sync.Mutex
	store  Store
	hasher password.Hasher
	tasks  Provisioner
	log    *slog.Logger
	users  []models.User
}

// NewService создает новый экземпляр Service. Перед использованием нужно вызвать Load.
func NewService(store Store, hasher password.Hasher, tasks Provisioner, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tasks:  tasks,
		log:    log,
		users:  []models.User{},
	}
}

// Load загружает коллекцию пользователей из хранилища.
func (s *Service) Load(ctx context.Context) error {
	const op = "users.Load"

	users := []models.User{}
	if err := s.store.Load(ctx, storage.Users, &users); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()

	s.log.Info("users loaded", sl.Op(op), slog.Int("count", len(users)))
	return nil
}

// Register проверяет поля кандидата и уникальность email и телефона, затем сохраняет пользователя.
// Возвращает ошибку, совместимую с models.ErrValidation или models.ErrConflict, при отказе.
func (s *Service) Register(ctx context.Context, candidate models.User) error {
	const op = "users.Register"
	log := s.log.With(sl.Op(op))

	if err := validation.ValidateUser(candidate); err != nil {
		log.Info("registration rejected", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == candidate.Email {
			log.Info("email already registered")
			return fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
	}
	for _, u := range s.users {
		if u.Phone == candidate.Phone {
			log.Info("phone already registered")
			return fmt.Errorf("%s: %w", op, models.ErrPhoneTaken)
		}
	}

	stored, err := s.hasher.Hash(candidate.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	candidate.Password = stored

	s.users = append(s.users, candidate)
	if err := s.store.Save(ctx, storage.Users, &s.users); err != nil {
		s.users = s.users[:len(s.users)-1]
		log.Error("failed to save users", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int("total", len(s.users)))
	return nil
}

// Authenticate ищет первого пользователя, у которого email или телефон равен identifier
// и пароль совпадает. При первом входе пользователю заводится пустой список задач.
func (s *Service) Authenticate(ctx context.Context, identifier, rawPassword string) (*models.User, error) {
	const op = "users.Authenticate"
	log := s.log.With(sl.Op(op))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email != identifier && u.Phone != identifier {
			continue
		}
		if !s.hasher.Match(u.Password, rawPassword) {
			continue
		}

		if err := s.tasks.EnsureList(ctx, u.Email); err != nil {
			log.Error("failed to provision task list", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		user := u
		log.Info("user authenticated")
		return &user, nil
	}

	log.Info("authentication failed")
	return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
}

// Count возвращает количество зарегистрированных пользователей.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
