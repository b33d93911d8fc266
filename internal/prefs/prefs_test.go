package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "data", "prefs.db")
	st, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, dsn
}

func TestSQLiteStore_GetSet(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	_, ok, err := st.Get(ctx, "alice", ThemeKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "alice", ThemeKey, "dark"))
	require.NoError(t, st.Set(ctx, "bob", ThemeKey, "light"))
	require.NoError(t, st.Set(ctx, "alice", ThemeKey, "light"))

	v, ok, err := st.Get(ctx, "alice", ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, st.Ping(ctx))
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	st, dsn := openTestStore(t)
	require.NoError(t, st.Set(ctx, "alice", ThemeKey, "dark"))
	require.NoError(t, st.Close())

	again, err := Open(dsn)
	require.NoError(t, err)
	defer again.Close()

	v, ok, err := again.Get(ctx, "alice", ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	var n int
	require.NoError(t, again.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeLight, ParseTheme(""))
	assert.Equal(t, ThemeLight, ParseTheme("DARK"))
	assert.Equal(t, "🌙", ThemeLight.Icon())
	assert.Equal(t, "🌞", ThemeDark.Icon())
}

func TestThemePreference_ToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, _ := openTestStore(t)

	pref, err := LoadTheme(ctx, st, "alice")
	require.NoError(t, err)
	assert.False(t, pref.Dark())

	got, err := pref.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)

	v, _, err := st.Get(ctx, "alice", ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	reloaded, err := LoadTheme(ctx, st, "alice")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, reloaded.Theme())

	got, err = reloaded.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got)
	v, _, _ = st.Get(ctx, "alice", ThemeKey)
	assert.Equal(t, "light", v)

	other, err := LoadTheme(ctx, st, "bob")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, other.Theme())
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string, string) (string, bool, error) {
	return "dark", true, nil
}

func (f failingStore) Set(context.Context, string, string, string) error { return f.err }

func TestThemePreference_ToggleWriteError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	pref, err := LoadTheme(ctx, failingStore{err: boom}, "alice")
	require.NoError(t, err)
	require.True(t, pref.Dark())

	got, err := pref.Toggle(ctx)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, ThemeDark, got)
	assert.True(t, pref.Dark())
}
