package memstore

import (
	"context"
	"testing"

	"github.com/and161185/proglo/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestStore_CopiesValues(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(out))
	out[0] = 'y'

	again, _ := s.Get(ctx, "k")
	require.Equal(t, "abc", string(again))

	require.NoError(t, s.Remove(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
