// Package storage реализует файловое хранилище трекера задач.
// Каждый ресурс (пользователи, задачи, корзина) хранится целиком в отдельном JSON-документе
// и перезаписывается полностью при каждом сохранении.
// Отсутствующий или повреждённый документ заменяется значением по умолчанию.
package storage

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
)

// Resource имя хранимой коллекции.
type Resource string

const (
	Users Resource = "users" // Массив пользователей
	Tasks Resource = "tasks" // Задачи по email владельца
	Trash Resource = "trash" // Корзина по email владельца
)

const schemaBaseURL = "https://task-tracker.local/schemas/"

//go:embed schemas/*.json
var schemaFS embed.FS

// Files задаёт имена файлов ресурсов внутри каталога хранилища.
type Files struct {
	Users string
	Tasks string
	Trash string
}

// DefaultFiles имена файлов, совместимые с исходным форматом данных.
var DefaultFiles = Files{
	Users: "users.json",
	Tasks: "users_tasks.json",
	Trash: "users_trash.json",
}

// Storage читает и пишет JSON-документы ресурсов в каталоге dir.
type Storage struct {
	dir     string
	files   map[Resource]string
	schemas map[Resource]*jsonschema.Schema
	log     *slog.Logger
}

// New создаёт каталог хранилища при необходимости и компилирует схемы документов.
func New(dir string, files Files, log *slog.Logger) (*Storage, error) {
	const op = "storage.New"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: mkdir %s: %w", op, dir, err)
	}

	schemas, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		dir: dir,
		files: map[Resource]string{
			Users: orDefault(files.Users, DefaultFiles.Users),
			Tasks: orDefault(files.Tasks, DefaultFiles.Tasks),
			Trash: orDefault(files.Trash, DefaultFiles.Trash),
		},
		schemas: schemas,
		log:     log,
	}, nil
}

// Path возвращает путь к файлу ресурса.
func (s *Storage) Path(res Resource) string {
	return filepath.Join(s.dir, s.files[res])
}

// Load читает ресурс res в v. Перед вызовом v должен содержать значение по умолчанию.
//
// Если файла нет, значение по умолчанию сразу записывается на диск.
// Если файл не разбирается или не соответствует схеме, v остаётся без изменений,
// а в лог пишется предупреждение. Ошибка возвращается только при сбоях ввода-вывода.
func (s *Storage) Load(ctx context.Context, res Resource, v any) error {
	const op = "storage.Load"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	path := s.Path(res)
	log := s.log.With(sl.Op(op), slog.String("resource", string(res)), slog.String("path", path))

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("resource file not found, initializing with default")
		return s.Save(ctx, res, v)
	}
	if err != nil {
		return fmt.Errorf("%s: read %s: %w", op, res, err)
	}

	if err := s.check(res, data); err != nil {
		log.Warn("resource file is corrupted, using default", sl.Err(err))
		return nil
	}

	target := reflect.New(reflect.TypeOf(v).Elem())
	if err := json.Unmarshal(data, target.Interface()); err != nil {
		log.Warn("resource file does not match model, using default", sl.Err(err))
		return nil
	}
	reflect.ValueOf(v).Elem().Set(target.Elem())

	log.Debug("resource loaded")
	return nil
}

// Save сериализует коллекцию целиком и перезаписывает файл ресурса.
func (s *Storage) Save(ctx context.Context, res Resource, v any) error {
	const op = "storage.Save"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: marshal %s: %w", op, res, err)
	}

	if err := os.WriteFile(s.Path(res), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%s: write %s: %w", op, res, err)
	}
	return nil
}

// check разбирает документ и проверяет его по схеме ресурса.
func (s *Storage) check(res Resource, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	schema, ok := s.schemas[res]
	if !ok {
		return nil
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

func compileSchemas() (map[Resource]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	for _, name := range []string{"users.json", "tasks.json"} {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	users, err := compiler.Compile(schemaBaseURL + "users.json")
	if err != nil {
		return nil, fmt.Errorf("compile users schema: %w", err)
	}
	tasks, err := compiler.Compile(schemaBaseURL + "tasks.json")
	if err != nil {
		return nil, fmt.Errorf("compile tasks schema: %w", err)
	}

	return map[Resource]*jsonschema.Schema{
		Users: users,
		Tasks: tasks,
		Trash: tasks,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
