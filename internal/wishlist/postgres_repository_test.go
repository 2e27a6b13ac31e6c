package wishlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/wishlist"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresRepository_ListOrdersBySequence(t *testing.T) {
	mock := newMock(t)
	repo := wishlist.NewPostgresRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, user_id, trek_id, created_at FROM wishlist_items WHERE user_id = \$1 ORDER BY seq`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "trek_id", "created_at"}).
			AddRow("wsh_a", "user-1", "4", now).
			AddRow("wsh_b", "user-1", "1", now))

	items, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "4", items[0].TrekID)
	assert.Equal(t, "1", items[1].TrekID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AddReturnsExistingOnConflict(t *testing.T) {
	mock := newMock(t)
	repo := wishlist.NewPostgresRepository(mock)
	added := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO wishlist_items .+ ON CONFLICT \(user_id, trek_id\) DO NOTHING`).
		WithArgs("wsh_new", "user-1", "2", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery(`SELECT .+ FROM wishlist_items WHERE user_id = \$1 AND trek_id = \$2`).
		WithArgs("user-1", "2").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "trek_id", "created_at"}).
			AddRow("wsh_old", "user-1", "2", added))

	item, created, err := repo.Add(context.Background(), &wishlist.Item{
		ID: "wsh_new", UserID: "user-1", TrekID: "2", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "wsh_old", item.ID)
	assert.Equal(t, added, item.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AddInserts(t *testing.T) {
	mock := newMock(t)
	repo := wishlist.NewPostgresRepository(mock)

	mock.ExpectExec(`INSERT INTO wishlist_items`).
		WithArgs("wsh_new", "user-1", "2", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	item, created, err := repo.Add(context.Background(), &wishlist.Item{
		ID: "wsh_new", UserID: "user-1", TrekID: "2", CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "wsh_new", item.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Remove(t *testing.T) {
	mock := newMock(t)
	repo := wishlist.NewPostgresRepository(mock)

	mock.ExpectExec(`DELETE FROM wishlist_items WHERE user_id = \$1 AND trek_id = \$2`).
		WithArgs("user-1", "2").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM wishlist_items`).
		WithArgs("user-1", "3").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := repo.Remove(context.Background(), "user-1", "2")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(context.Background(), "user-1", "3")
	require.NoError(t, err)
	assert.False(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
