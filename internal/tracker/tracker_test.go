package tracker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/task-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/task-tracker/internal/lib/password"
	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	"github.com/magabrotheeeer/task-tracker/internal/storage"
	"github.com/magabrotheeeer/task-tracker/internal/tracker"
)

var alice = models.User{
	Name:     "Alice",
	Email:    "a@b.co",
	Phone:    "89991234567",
	Password: "abcde",
}

func clock() time.Time {
	return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
}

func open(t *testing.T, dir string, opts tracker.Options) *tracker.Tracker {
	t.Helper()
	st, err := storage.New(dir, storage.DefaultFiles, sl.Discard())
	require.NoError(t, err)
	if opts.Clock == nil {
		opts.Clock = clock
	}
	tr, err := tracker.New(context.Background(), st, sl.Discard(), opts)
	require.NoError(t, err)
	return tr
}

func TestTracker_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tr := open(t, dir, tracker.Options{})

	require.NoError(t, tr.Register(ctx, alice))

	dupEmail := alice
	dupEmail.Phone = "+79990000000"
	assert.ErrorIs(t, tr.Register(ctx, dupEmail), models.ErrConflict)

	dupPhone := alice
	dupPhone.Email = "other@b.co"
	assert.ErrorIs(t, tr.Register(ctx, dupPhone), models.ErrConflict)

	bad := alice
	bad.Password = "abc12"
	bad.Email = "new@b.co"
	bad.Phone = "+79991112233"
	assert.ErrorIs(t, tr.Register(ctx, bad), models.ErrValidation)
	assert.Equal(t, 1, tr.UserCount())

	u, err := tr.Authenticate(ctx, "89991234567", "abcde")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", u.Email)
	assert.Equal(t, "Alice", u.Name)

	_, err = tr.Authenticate(ctx, "a@b.co", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	data, err := os.ReadFile(filepath.Join(dir, storage.DefaultFiles.Tasks))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a@b.co": []}`, string(data))
}

func TestTracker_TaskLifecycleSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tr := open(t, dir, tracker.Options{})

	require.NoError(t, tr.Register(ctx, alice))
	_, err := tr.Authenticate(ctx, alice.Email, alice.Password)
	require.NoError(t, err)

	require.NoError(t, tr.AddTask(ctx, alice.Email, "Buy milk", "2099-01-01"))
	require.NoError(t, tr.AddTask(ctx, alice.Email, "Pay rent", "2024-03-14"))
	require.NoError(t, tr.AddTask(ctx, alice.Email, "Купить хлеб <сегодня>", "2024-03-15"))
	require.NoError(t, tr.ToggleTask(ctx, alice.Email, "Buy milk"))
	require.NoError(t, tr.DeleteTask(ctx, alice.Email, "Pay rent"))

	restarted := open(t, dir, tracker.Options{})

	all := restarted.ListTasks(alice.Email, models.FilterAll)
	require.Len(t, all, 2)
	assert.Equal(t, "Buy milk", all[0].Text)
	assert.True(t, all[0].Completed)
	assert.Equal(t, "Купить хлеб <сегодня>", all[1].Text)
	assert.True(t, all[1].Urgent)

	assert.Equal(t, 1, restarted.TrashCount(alice.Email))
	require.NoError(t, restarted.RestoreTask(ctx, alice.Email, "Pay rent"))
	overdue := restarted.ListTasks(alice.Email, models.FilterOverdue)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Pay rent", overdue[0].Text)

	require.NoError(t, restarted.DeleteTask(ctx, alice.Email, "Buy milk"))
	assert.Len(t, restarted.ListTrash(alice.Email), 1)
	require.NoError(t, restarted.EmptyTrash(ctx, alice.Email))
	assert.ErrorIs(t, restarted.EmptyTrash(ctx, alice.Email), models.ErrTrashEmpty)
	assert.Equal(t, 0, restarted.TrashCount(alice.Email))

	raw, err := os.ReadFile(filepath.Join(dir, storage.DefaultFiles.Tasks))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Купить хлеб <сегодня>")
}

func TestTracker_CorruptFilesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{storage.DefaultFiles.Users, storage.DefaultFiles.Tasks, storage.DefaultFiles.Trash} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{not json"), 0o644))
	}

	tr := open(t, dir, tracker.Options{})
	assert.Equal(t, 0, tr.UserCount())
	assert.Empty(t, tr.ListTasks("a@b.co", models.FilterAll))
	assert.Equal(t, 0, tr.TrashCount("a@b.co"))

	require.NoError(t, tr.Register(context.Background(), alice))
	assert.Equal(t, 1, open(t, dir, tracker.Options{}).UserCount())
}

func TestTracker_HashedPasswords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tr := open(t, dir, tracker.Options{Hasher: password.Bcrypt{Cost: 4}})

	require.NoError(t, tr.Register(ctx, alice))

	raw, err := os.ReadFile(filepath.Join(dir, storage.DefaultFiles.Users))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"abcde"`)

	_, err = tr.Authenticate(ctx, alice.Email, "abcde")
	assert.NoError(t, err)
}

func TestTracker_Metrics(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())
	tr := open(t, t.TempDir(), tracker.Options{Metrics: m})

	require.NoError(t, tr.AddTask(ctx, alice.Email, "one", ""))
	assert.Error(t, tr.AddTask(ctx, alice.Email, " ", ""))
	assert.Error(t, tr.ToggleTask(ctx, alice.Email, "missing"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter("add_task", metrics.ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter("add_task", metrics.ResultValidation)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Counter("toggle_task", metrics.ResultNotFound)))
}

func TestNew_CancelledContext(t *testing.T) {
	st, err := storage.New(t.TempDir(), storage.DefaultFiles, sl.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tracker.New(ctx, st, sl.Discard(), tracker.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
