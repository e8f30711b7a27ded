// Package console реализует интерактивный консольный интерфейс трекера задач.
//
// Цикл читает команды построчно и вызывает операции Tracker. Текущий пользователь
// хранится только в App и сбрасывается командой logout.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/validation"
)

// Tracker операции ядра, которыми пользуется консоль.
type Tracker interface {
	Register(ctx context.Context, u models.User) error
	Authenticate(ctx context.Context, identifier, password string) (*models.User, error)
	AddTask(ctx context.Context, email, text, dueDate string) error
	ListTasks(email string, filter models.Filter) []models.TaskView
	ToggleTask(ctx context.Context, email, text string) error
	DeleteTask(ctx context.Context, email, text string) error
	RestoreTask(ctx context.Context, email, text string) error
	EmptyTrash(ctx context.Context, email string) error
	TrashCount(email string) int
	ListTrash(email string) []models.Task
}

// App состояние консольной сессии.
type App struct {
	tracker  Tracker
	in       *bufio.Reader
	out      io.Writer
	log      *slog.Logger
	password PasswordFunc
	user     *models.User
}

// New создаёт App, читающую команды из in и печатающую в out.
// По умолчанию пароль читается обычной строкой из in.
func New(tracker Tracker, in io.Reader, out io.Writer, log *slog.Logger) *App {
	a := &App{
		tracker: tracker,
		in:      bufio.NewReader(in),
		out:     out,
		log:     log,
	}
	a.password = func() (string, error) {
		return a.readLine("")
	}
	return a
}

// WithPassword задаёт способ чтения пароля, например TerminalPassword.
func (a *App) WithPassword(fn PasswordFunc) *App {
	a.password = fn
	return a
}

// Run запускает цикл чтения команд. Возвращается при EOF, exit/quit или отмене ctx.
func (a *App) Run(ctx context.Context) error {
	a.println("Трекер задач. Введите help для списка команд.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := GetSimpleText(a.in, fmt.Sprintf("tt [%s]> ", a.status()), a.out)
		if errors.Is(err, io.EOF) {
			a.println()
			return nil
		}
		if err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		if err := a.dispatch(ctx, cmd, arg); err != nil {
			if errors.Is(err, errQuit) {
				a.println("Выход из программы.")
				return nil
			}
			if errors.Is(err, io.EOF) {
				a.println()
				return nil
			}
			a.log.Error("command failed", slog.String("command", cmd), sl.Err(err))
			a.println("❌ Ошибка:", err)
		}
	}
}

var errQuit = errors.New("quit")

func (a *App) dispatch(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "help":
		a.help()
		return nil
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "exit", "quit":
		return errQuit
	}

	if a.user == nil {
		switch cmd {
		case "logout", "add", "list", "ls", "toggle", "delete", "trash", "restore", "empty":
			a.println("Сначала войдите: login")
		default:
			a.println("Неизвестная команда:", cmd)
		}
		return nil
	}

	switch cmd {
	case "logout":
		a.println("До свидания,", a.user.Name+"!")
		a.user = nil
		return nil
	case "add":
		return a.add(ctx, arg)
	case "list", "ls":
		a.list(arg)
		return nil
	case "toggle":
		return a.byText(ctx, arg, a.tracker.ToggleTask, "✅ Статус задачи изменён.")
	case "delete":
		return a.byText(ctx, arg, a.tracker.DeleteTask, "🗑 Задача перемещена в корзину.")
	case "restore":
		return a.byText(ctx, arg, a.tracker.RestoreTask, "♻ Задача восстановлена.")
	case "trash":
		a.trash()
		return nil
	case "empty":
		return a.empty(ctx)
	default:
		a.println("Неизвестная команда:", cmd)
		return nil
	}
}

func (a *App) status() string {
	if a.user == nil {
		return "гость"
	}
	return a.user.Email
}

func (a *App) help() {
	if a.user == nil {
		a.println("Команды: register, login, help, exit")
		return
	}
	a.println("Команды: add [текст], list [all|active|completed|urgent|overdue], toggle <текст>,")
	a.println("         delete <текст>, trash, restore <текст>, empty, logout, help, exit")
}

// register запрашивает поля по очереди и повторяет запрос, пока значение не пройдёт проверку.
func (a *App) register(ctx context.Context) error {
	a.println("Регистрация")

	var u models.User
	var err error
	if u.Name, err = a.promptValid("Введите имя: ", a.readLine, validation.NameValid); err != nil {
		return err
	}
	if u.Email, err = a.promptValid("Введите email: ", a.readLine, validation.EmailValid); err != nil {
		return err
	}
	if u.Phone, err = a.promptValid("Введите телефон: ", a.readLine, validation.PhoneValid); err != nil {
		return err
	}
	if u.Password, err = a.promptValid("Введите пароль: ", a.readPassword, validation.PasswordValid); err != nil {
		return err
	}

	err = a.tracker.Register(ctx, u)
	switch {
	case errors.Is(err, models.ErrEmailTaken):
		a.println("❌ Ошибка: Пользователь с таким email уже существует!")
	case errors.Is(err, models.ErrPhoneTaken):
		a.println("❌ Ошибка: Пользователь с таким телефоном уже существует!")
	case errors.Is(err, models.ErrValidation):
		a.println("❌ Ошибка: Некорректные данные.")
	case err != nil:
		return err
	default:
		a.println("✅ Регистрация прошла успешно!")
	}
	return nil
}

func (a *App) login(ctx context.Context) error {
	a.println("Вход в систему")
	identifier, err := a.readLine("Введите email или телефон: ")
	if err != nil {
		return err
	}
	pw, err := a.readPassword("Введите пароль: ")
	if err != nil {
		return err
	}

	user, err := a.tracker.Authenticate(ctx, identifier, pw)
	if errors.Is(err, models.ErrInvalidCredentials) {
		a.println("❌ Ошибка: Неверный email/телефон или пароль.")
		return nil
	}
	if err != nil {
		return err
	}
	a.user = user
	a.println(fmt.Sprintf("✅ Вход выполнен! Добро пожаловать, %s!", user.Name))
	return nil
}

func (a *App) add(ctx context.Context, text string) error {
	var err error
	if text == "" {
		if text, err = a.readLine("Текст задачи: "); err != nil {
			return err
		}
	}
	due, err := a.readLine("Срок (YYYY-MM-DD, пусто — без срока): ")
	if err != nil {
		return err
	}

	err = a.tracker.AddTask(ctx, a.user.Email, text, due)
	if errors.Is(err, models.ErrValidation) {
		a.println("❌ Ошибка: Пустой текст или неверный формат даты.")
		return nil
	}
	if err != nil {
		return err
	}
	a.println("✅ Задача добавлена.")
	return nil
}

func (a *App) list(filter string) {
	f := models.ParseFilter(filter)
	tasks := a.tracker.ListTasks(a.user.Email, f)
	if len(tasks) == 0 {
		a.println("Задач нет.")
	}
	for i, t := range tasks {
		a.println(formatTask(i+1, t))
	}
	a.println(fmt.Sprintf("Фильтр: %s. В корзине: %d.", f, a.tracker.TrashCount(a.user.Email)))
}

func (a *App) trash() {
	tasks := a.tracker.ListTrash(a.user.Email)
	if len(tasks) == 0 {
		a.println("Корзина пуста.")
		return
	}
	for i, t := range tasks {
		a.println(formatTask(i+1, models.TaskView{Task: t}))
	}
}

func (a *App) empty(ctx context.Context) error {
	err := a.tracker.EmptyTrash(ctx, a.user.Email)
	if errors.Is(err, models.ErrTrashEmpty) {
		a.println("Корзина уже пуста.")
		return nil
	}
	if err != nil {
		return err
	}
	a.println("🗑 Корзина очищена.")
	return nil
}

func (a *App) byText(ctx context.Context, text string, op func(ctx context.Context, email, text string) error, done string) error {
	var err error
	if text == "" {
		if text, err = a.readLine("Текст задачи: "); err != nil {
			return err
		}
	}
	err = op(ctx, a.user.Email, text)
	if errors.Is(err, models.ErrNotFound) {
		a.println("❌ Задача не найдена.")
		return nil
	}
	if err != nil {
		return err
	}
	a.println(done)
	return nil
}

func (a *App) promptValid(prompt string, read func(string) (string, error), valid func(string) bool) (string, error) {
	for {
		value, err := read(prompt)
		if err != nil {
			return "", err
		}
		if valid(value) {
			return value, nil
		}
		a.println("Некорректный ввод. Попробуйте ещё раз.")
	}
}

func (a *App) readLine(prompt string) (string, error) {
	return GetSimpleText(a.in, prompt, a.out)
}

func (a *App) readPassword(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	return a.password()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func formatTask(n int, t models.TaskView) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d. [%s] %s", n, mark, t.Text)
	if t.DueDate != nil {
		fmt.Fprintf(&b, " (до %s)", *t.DueDate)
	}
	switch {
	case t.Completed:
	case t.Overdue:
		b.WriteString(" ⚠ просрочено")
	case t.Urgent:
		b.WriteString(" ⏰ срочно")
	}
	return b.String()
}
