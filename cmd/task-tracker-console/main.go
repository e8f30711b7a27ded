// Package main запускает консольный интерфейс трекера задач.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/task-tracker/internal/config"
	"github.com/magabrotheeeer/task-tracker/internal/console"
	"github.com/magabrotheeeer/task-tracker/internal/lib/password"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/storage"
	"github.com/magabrotheeeer/task-tracker/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	// Логи идут в stderr и только в локальном окружении, чтобы не мешать диалогу
	logger := sl.Discard()
	if cfg.Env == sl.EnvLocal {
		logger = sl.New(cfg.Env, os.Stderr)
	}

	// Ctrl+C завершает процесс сразу: каждое изменение уже сброшено на диск
	ctx := context.Background()

	store, err := storage.New(cfg.Dir, storage.Files{
		Users: cfg.UsersFile,
		Tasks: cfg.TasksFile,
		Trash: cfg.TrashFile,
	}, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open storage:", err)
		os.Exit(1)
	}

	tr, err := tracker.New(ctx, store, logger, tracker.Options{
		Hasher: password.New(cfg.HashPasswords),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load tracker:", err)
		os.Exit(1)
	}

	app := console.New(tr, os.Stdin, os.Stdout, logger)
	if fd := int(os.Stdin.Fd()); console.IsTerminal(fd) {
		app.WithPassword(console.TerminalPassword(fd, os.Stdout))
	}

	if err := app.Run(ctx); err != nil {
		logger.Info("console stopped", sl.Err(err))
	}
}
