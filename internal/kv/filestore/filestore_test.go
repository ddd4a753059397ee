package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/and161185/proglo/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, "proglo_users")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, s.Set(ctx, "proglo_users", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Set(ctx, "proglo_users", []byte(`[{"id":"2"}]`)))
	v, err := s.Get(ctx, "proglo_users")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"2"}]`, string(v))

	fi, err := os.Stat(filepath.Join(dir, "proglo_users.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, s.Remove(ctx, "proglo_users"))
	require.NoError(t, s.Remove(ctx, "proglo_users"))
	_, err = s.Get(ctx, "proglo_users")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.Error(t, s.Set(ctx, "../escape", []byte("x")))
	_, err = s.Get(ctx, "a/b")
	require.Error(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Set(ctx, "k", []byte("v")), context.Canceled)
}
