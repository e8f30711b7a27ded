package console

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/storage"
	"github.com/magabrotheeeer/task-tracker/internal/tracker"
)

func newTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	st, err := storage.New(t.TempDir(), storage.DefaultFiles, sl.Discard())
	require.NoError(t, err)
	tr, err := tracker.New(context.Background(), st, sl.Discard(), tracker.Options{
		Clock: func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local) },
	})
	require.NoError(t, err)
	return tr
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func run(t *testing.T, tr Tracker, input *strings.Reader) string {
	t.Helper()
	var out bytes.Buffer
	err := New(tr, input, &out, sl.Discard()).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestApp_FullSession(t *testing.T) {
	tr := newTracker(t)

	out := run(t, tr, script(
		"register",
		"Alice!",
		"Alice",
		"not-an-email",
		"a@b.co",
		"12345",
		"89991234567",
		"abc12",
		"abcde",
		"login",
		"89991234567",
		"abcde",
		"add Buy milk",
		"2099-01-01",
		"add",
		"Pay rent",
		"2024-03-14",
		"add Call mom",
		"2024-03-16",
		"list urgent",
		"toggle Pay rent",
		"list completed",
		"delete Buy milk",
		"trash",
		"restore Buy milk",
		"delete Call mom",
		"empty",
		"empty",
		"logout",
		"exit",
	))

	assert.Equal(t, 4, strings.Count(out, "Некорректный ввод. Попробуйте ещё раз."))
	assert.Contains(t, out, "✅ Регистрация прошла успешно!")
	assert.Contains(t, out, "✅ Вход выполнен! Добро пожаловать, Alice!")
	assert.Contains(t, out, "1. [ ] Pay rent (до 2024-03-14) ⚠ просрочено")
	assert.Contains(t, out, "2. [ ] Call mom (до 2024-03-16) ⏰ срочно")
	assert.Contains(t, out, "1. [x] Pay rent (до 2024-03-14)\n")
	assert.Contains(t, out, "1. [ ] Buy milk (до 2099-01-01)\n")
	assert.Contains(t, out, "♻ Задача восстановлена.")
	assert.Contains(t, out, "🗑 Корзина очищена.")
	assert.Contains(t, out, "Корзина уже пуста.")
	assert.Contains(t, out, "До свидания, Alice!")
	assert.Contains(t, out, "Выход из программы.")

	all := tr.ListTasks("a@b.co", models.FilterAll)
	require.Len(t, all, 2)
	assert.Equal(t, "Pay rent", all[0].Text)
	assert.Equal(t, "Buy milk", all[1].Text)
	assert.Equal(t, 0, tr.TrashCount("a@b.co"))
}

func TestApp_RequiresLogin(t *testing.T) {
	out := run(t, newTracker(t), script("add Buy milk", "list", "frobnicate", "quit"))

	assert.Equal(t, 2, strings.Count(out, "Сначала войдите: login"))
	assert.Contains(t, out, "Неизвестная команда: frobnicate")
	assert.Contains(t, out, "tt [гость]> ")
}

func TestApp_LoginFailuresAndDuplicates(t *testing.T) {
	tr := newTracker(t)
	require.NoError(t, tr.Register(context.Background(), models.User{
		Name: "Alice", Email: "a@b.co", Phone: "89991234567", Password: "abcde",
	}))

	out := run(t, tr, script(
		"login", "a@b.co", "wrong",
		"register", "Bob", "a@b.co", "+79990000000", "secret",
		"register", "Bob", "b@b.co", "89991234567", "secret",
	))

	assert.Contains(t, out, "❌ Ошибка: Неверный email/телефон или пароль.")
	assert.Contains(t, out, "❌ Ошибка: Пользователь с таким email уже существует!")
	assert.Contains(t, out, "❌ Ошибка: Пользователь с таким телефоном уже существует!")
}

func TestApp_TaskErrors(t *testing.T) {
	tr := newTracker(t)
	require.NoError(t, tr.Register(context.Background(), models.User{
		Name: "Alice", Email: "a@b.co", Phone: "89991234567", Password: "abcde",
	}))

	out := run(t, tr, script(
		"login", "a@b.co", "abcde",
		"add   ", "   ", "",
		"add Bad date", "15.03.2024",
		"toggle nope",
		"restore nope",
		"list",
		"trash",
	))

	assert.Equal(t, 2, strings.Count(out, "❌ Ошибка: Пустой текст или неверный формат даты."))
	assert.Equal(t, 2, strings.Count(out, "❌ Задача не найдена."))
	assert.Contains(t, out, "Задач нет.")
	assert.Contains(t, out, "Фильтр: all. В корзине: 0.")
	assert.Contains(t, out, "Корзина пуста.")
}

func TestApp_CustomPasswordReader(t *testing.T) {
	tr := newTracker(t)
	require.NoError(t, tr.Register(context.Background(), models.User{
		Name: "Alice", Email: "a@b.co", Phone: "89991234567", Password: "abcde",
	}))

	var out bytes.Buffer
	app := New(tr, script("login", "a@b.co", "exit"), &out, sl.Discard()).
		WithPassword(func() (string, error) { return "abcde", nil })
	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, out.String(), "Добро пожаловать, Alice!")
}

func TestApp_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(newTracker(t), script("help"), &out, sl.Discard()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminalPassword(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()

	readPassword = func(fd int) ([]byte, error) {
		assert.Equal(t, 7, fd)
		return []byte("abcde\n"), nil
	}
	var out bytes.Buffer
	pw, err := TerminalPassword(7, &out)()
	require.NoError(t, err)
	assert.Equal(t, "abcde", pw)
	assert.Equal(t, "\n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a tty") }
	_, err = TerminalPassword(7, &out)()
	assert.Error(t, err)
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := newReader("  first  \nlast")

	got, err := GetSimpleText(r, "> ", &out)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = GetSimpleText(r, "> ", &out)
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = GetSimpleText(r, "> ", &out)
	assert.Error(t, err)
	assert.Equal(t, "> > > ", out.String())
}

func newReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
