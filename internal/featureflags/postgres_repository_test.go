package featureflags_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/featureflags"
)

func TestPostgresRepository_GetAllFlags(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	repo := featureflags.NewPostgresRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT key, value, updated_at FROM feature_flags`).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow(featureflags.FlagRecommendationLimit, []byte(`8`), time.Now()).
			AddRow(featureflags.FlagSearchCombinedFilters, []byte(`true`), time.Now()))

	flags, err := repo.GetAllFlags(ctx)
	require.NoError(t, err)
	require.Len(t, flags, 2)
	assert.Equal(t, 8, flags[featureflags.FlagRecommendationLimit].IntValue(0))
	assert.True(t, flags[featureflags.FlagSearchCombinedFilters].BoolValue(false))

	mock.ExpectQuery(`SELECT key, value, updated_at FROM feature_flags`).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.GetAllFlags(ctx)
	assert.ErrorContains(t, err, "connection reset")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetFlags(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	repo := featureflags.NewPostgresRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO feature_flags`).
		WithArgs(featureflags.FlagSearchCombinedFilters, []byte(`true`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO feature_flags`).
		WithArgs(featureflags.FlagDisableProviderSync, []byte(`false`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.SetFlags(context.Background(), []*featureflags.Flag{
		{Key: featureflags.FlagSearchCombinedFilters, Value: true},
		{Key: featureflags.FlagDisableProviderSync, Value: false},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SetFlags_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	repo := featureflags.NewPostgresRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO feature_flags`).
		WithArgs(featureflags.FlagRecommendationLimit, []byte(`4`), pgxmock.AnyArg()).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err = repo.SetFlags(context.Background(), []*featureflags.Flag{
		{Key: featureflags.FlagRecommendationLimit, Value: 4},
		{Key: featureflags.FlagDisableProviderSync, Value: true},
	})
	require.ErrorContains(t, err, "deadlock detected")
	require.NoError(t, mock.ExpectationsWereMet())
}
