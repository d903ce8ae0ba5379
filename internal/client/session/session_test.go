package session

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintbox/internal/client/store"
)

func newTestState(t *testing.T) (*AppState, *store.Bolt) {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Load(kv, logger), kv
}

func reload(kv *store.Bolt) *AppState {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Load(kv, logger)
}

func TestSessionLifecycle(t *testing.T) {
	s, kv := newTestState(t)
	assert.False(t, s.Authenticated())

	user := User{ID: "u-1", Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, s.SetSession("tok-abc", user))
	assert.True(t, s.Authenticated())

	// Startup read restores both the token and the cached profile.
	restored := reload(kv)
	assert.True(t, restored.Authenticated())
	token, got := restored.Session()
	assert.Equal(t, "tok-abc", token)
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.Name)

	require.NoError(t, restored.ClearSession())
	assert.False(t, restored.Authenticated())
	assert.False(t, reload(kv).Authenticated())
}

func TestThemeFlag(t *testing.T) {
	s, kv := newTestState(t)
	assert.False(t, s.Dark(), "default theme is light")

	var notified []bool
	s.SubscribeTheme(func(dark bool) { notified = append(notified, dark) })

	require.NoError(t, s.SetDark(true))
	assert.True(t, s.Dark())
	assert.Equal(t, []bool{true}, notified)

	assert.True(t, reload(kv).Dark())

	require.NoError(t, s.SetDark(false))
	assert.Equal(t, []bool{true, false}, notified)
}

func TestOnboardingFlag(t *testing.T) {
	s, kv := newTestState(t)
	assert.False(t, s.OnboardingSeen())

	require.NoError(t, s.MarkOnboardingSeen())
	assert.True(t, s.OnboardingSeen())
	assert.True(t, reload(kv).OnboardingSeen())
}

func TestUnreadableProfileIsNotFatal(t *testing.T) {
	kv, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	require.NoError(t, kv.Put("userToken", []byte("tok-abc")))
	require.NoError(t, kv.Put("userData", []byte("{broken")))

	s := reload(kv)
	assert.True(t, s.Authenticated())
	_, user := s.Session()
	assert.Nil(t, user)
}
