package pgstore

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/proglo/internal/errs"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &Store{Pool: mock}, mock
}

func TestStore_Get(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM kv_entries WHERE key=\$1`).
		WithArgs("proglo_users").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
	v, err := s.Get(ctx, "proglo_users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), v)

	mock.ExpectQuery(`SELECT value FROM kv_entries WHERE key=\$1`).
		WithArgs("proglo_goals").
		WillReturnError(pgx.ErrNoRows)
	_, err = s.Get(ctx, "proglo_goals")
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`SELECT value FROM kv_entries WHERE key=\$1`).
		WithArgs("proglo_goals").
		WillReturnError(errors.New("conn reset"))
	_, err = s.Get(ctx, "proglo_goals")
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO kv_entries \(key, value, updated_at\) VALUES \(\$1, \$2, now\(\)\) ON CONFLICT \(key\) DO UPDATE SET value = EXCLUDED.value, updated_at = now\(\)`).
		WithArgs("proglo_sleep", []byte(`[{"id":"a"}]`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, s.Set(context.Background(), "proglo_sleep", []byte(`[{"id":"a"}]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Remove(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM kv_entries WHERE key=\$1`).
		WithArgs("proglo_current_user").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, s.Remove(context.Background(), "proglo_current_user"))
	require.NoError(t, mock.ExpectationsWereMet())
}
