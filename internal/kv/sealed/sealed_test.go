package sealed

import (
	"bytes"
	"context"
	"testing"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv"
	"github.com/and161185/proglo/internal/kv/memstore"
	"github.com/stretchr/testify/require"
)

func TestSealed_RoundTripAndAtRest(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()

	s, err := Open(ctx, inner, "hunter2")
	require.NoError(t, err)

	val := []byte(`[{"id":"a","user_id":"u"}]`)
	require.NoError(t, s.Set(ctx, "proglo_activities", val))

	raw, err := inner.Get(ctx, "proglo_activities")
	require.NoError(t, err)
	require.False(t, bytes.Contains(raw, []byte("user_id")), "value must not be stored in plaintext")

	got, err := s.Get(ctx, "proglo_activities")
	require.NoError(t, err)
	require.Equal(t, val, got)

	_, err = s.Get(ctx, "proglo_goals")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSealed_ReopenAndWrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()

	s, err := Open(ctx, inner, "first")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "proglo_sleep", []byte(`[]`)))

	again, err := Open(ctx, inner, "first")
	require.NoError(t, err)
	got, err := again.Get(ctx, "proglo_sleep")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)

	_, err = Open(ctx, inner, "second")
	require.ErrorIs(t, err, ErrWrongPassphrase)

	_, err = Open(ctx, inner, "")
	require.Error(t, err)
}

func TestSealed_Rekey(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()

	s, err := Open(ctx, inner, "old")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "proglo_users", []byte(`[1]`)))
	require.NoError(t, s.Rekey(ctx, "new"))

	_, err = Open(ctx, inner, "old")
	require.ErrorIs(t, err, ErrWrongPassphrase)

	s2, err := Open(ctx, inner, "new")
	require.NoError(t, err)
	got, err := s2.Get(ctx, "proglo_users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[1]`), got)
}

func TestSealed_SwappedOrTamperedValueIsCorrupt(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()

	s, err := Open(ctx, inner, "pw")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "proglo_goals", []byte(`[]`)))

	blob, err := inner.Get(ctx, "proglo_goals")
	require.NoError(t, err)
	require.NoError(t, inner.Set(ctx, "proglo_hydration", blob))
	_, err = s.Get(ctx, "proglo_hydration")
	require.ErrorIs(t, err, errs.ErrCorrupt)

	require.NoError(t, inner.Set(ctx, "proglo_goals", []byte("plain text")))
	_, err = s.Get(ctx, "proglo_goals")
	require.ErrorIs(t, err, errs.ErrCorrupt)
}

func TestSealed_RefusesToSealOverPlainData(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()
	require.NoError(t, RequirePlain(ctx, inner))

	plain := []byte(`[{"id":"u1","email":"a@x.io"}]`)
	require.NoError(t, inner.Set(ctx, kv.KeyUsers, plain))

	_, err := Open(ctx, inner, "hunter2")
	require.ErrorIs(t, err, ErrPlainData)

	got, err := inner.Get(ctx, kv.KeyUsers)
	require.NoError(t, err)
	require.Equal(t, plain, got, "plaintext must be left untouched")
	_, err = inner.Get(ctx, kv.KeySealHeader)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, RequirePlain(ctx, inner))
}

func TestRequirePlain_SealedStore(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()

	s, err := Open(ctx, inner, "hunter2")
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, kv.KeyUsers, []byte(`[]`)))

	require.ErrorIs(t, RequirePlain(ctx, inner), ErrSealed)
}
