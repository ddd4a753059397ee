package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/proglo/internal/errs"
	"github.com/and161185/proglo/internal/kv/memstore"
	"github.com/and161185/proglo/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Set(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Remove(context.Context, string) error        { return f.err }

func TestCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New[model.Activity](memstore.New(), "proglo_activities", nil)

	kcal := 250
	photo := "file:///tmp/run.jpg"
	in := []model.Activity{
		{ID: "a1", UserID: "u1", Type: "running", Duration: 30, Intensity: "high", Date: "2025-04-11",
			CaloriesBurned: &kcal, Location: &model.Location{Lat: 52.1, Lng: 4.3, Address: "Park"}, Photo: &photo},
		{ID: "a2", UserID: "u2", Type: "yoga", Duration: 45, Intensity: "low", Date: "2025-04-12"},
	}
	require.NoError(t, c.Set(ctx, in))

	out, err := c.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestCollection_MissingKeyIsEmpty(t *testing.T) {
	c := New[model.Goal](memstore.New(), "proglo_goals", nil)
	out, err := c.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestCollection_CorruptValueIsEmptyAndLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	store := memstore.New()
	require.NoError(t, store.Set(ctx, "proglo_sleep", []byte(`{not json`)))

	c := New[model.SleepRecord](store, "proglo_sleep", zap.New(core))
	out, err := c.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 1, logs.FilterField(zap.String("key", "proglo_sleep")).Len())

	require.NoError(t, c.Set(ctx, []model.SleepRecord{{ID: "s1", HoursSlept: 8}}))
	out, err = c.Get(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestCollection_ErrCorruptFromStoreIsSwallowed(t *testing.T) {
	c := New[model.HydrationRecord](failingStore{err: errs.ErrCorrupt}, "proglo_hydration", nil)
	out, err := c.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCollection_IOErrorsPropagate(t *testing.T) {
	boom := errors.New("disk gone")
	c := New[model.Goal](failingStore{err: boom}, "proglo_goals", nil)

	_, err := c.Get(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, c.Set(context.Background(), nil), boom)
}

func TestCollection_NullValueIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Set(ctx, "proglo_goals", []byte(`null`)))

	out, err := New[model.Goal](store, "proglo_goals", nil).Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}
