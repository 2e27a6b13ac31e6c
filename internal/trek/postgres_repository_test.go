package trek_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/trek"
)

var trekColumnNames = []string{
	"id", "name", "location", "country", "difficulty", "duration", "distance", "max_elevation",
	"best_months", "climate", "description", "long_description", "rating", "review_count",
	"image_url", "highlights", "requirements", "price",
	"provider", "provider_url", "provider_trek_id", "last_updated", "created_at",
}

func trekRow(rows *pgxmock.Rows, id, name string, rating int) *pgxmock.Rows {
	now := time.Now()
	distance := 56
	return rows.AddRow(
		id, name, "Sikkim • Himalayas", "India", "Challenging", 9, &distance, (*int)(nil),
		[]string{"March"}, "Alpine", "desc", (*string)(nil), rating, 12,
		(*string)(nil), []string{"Views"}, []byte(`{"fitnessLevel":"Advanced"}`), (*int)(nil),
		"bikat", (*string)(nil), strPtr("bikat-"+id), now, now,
	)
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPostgresCatalog_GetAll(t *testing.T) {
	mock := newMock(t)
	catalog := trek.NewPostgresCatalog(mock)

	rows := pgxmock.NewRows(trekColumnNames)
	trekRow(rows, "a", "Goecha La Trek", 48)
	trekRow(rows, "b", "Rupin Pass Trek", 47)
	mock.ExpectQuery(`SELECT .+ FROM treks ORDER BY seq`).WillReturnRows(rows)

	treks, err := catalog.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, treks, 2)
	assert.Equal(t, "a", treks[0].ID)
	assert.Equal(t, trek.DifficultyChallenging, treks[0].Difficulty)
	assert.Equal(t, trek.ProviderBikat, treks[0].Provider)
	require.NotNil(t, treks[0].Requirements)
	assert.Equal(t, "Advanced", treks[0].Requirements.FitnessLevel)
	assert.Equal(t, 56, *treks[0].Distance)
	assert.Equal(t, "b", treks[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_GetNotFound(t *testing.T) {
	mock := newMock(t)
	catalog := trek.NewPostgresCatalog(mock)

	mock.ExpectQuery(`SELECT .+ FROM treks WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := catalog.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, trek.ErrTrekNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_InsertIfAbsent(t *testing.T) {
	mock := newMock(t)
	catalog := trek.NewPostgresCatalog(mock)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO treks .+ ON CONFLICT \(provider, provider_trek_id\)`).
		WithArgs(anyArgs(23)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	stored, inserted, err := catalog.InsertIfAbsent(ctx, bikatTrek("bikat-a"))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "Goecha La Trek", stored.Name)

	mock.ExpectExec(`INSERT INTO treks .+ ON CONFLICT \(provider, provider_trek_id\)`).
		WithArgs(anyArgs(23)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	rows := pgxmock.NewRows(trekColumnNames)
	trekRow(rows, "a", "Goecha La Trek", 48)
	mock.ExpectQuery(`SELECT .+ FROM treks WHERE provider = \$1 AND provider_trek_id = \$2`).
		WithArgs("bikat", "bikat-a").
		WillReturnRows(rows)

	existing, inserted, err := catalog.InsertIfAbsent(ctx, bikatTrek("bikat-a"))
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, "a", existing.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_Load(t *testing.T) {
	mock := newMock(t)
	catalog := trek.NewPostgresCatalog(mock)

	seed := trek.Seed()[:2]
	mock.ExpectExec(`INSERT INTO treks .+ ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(anyArgs(23)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO treks .+ ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(anyArgs(23)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	loaded, err := catalog.Load(context.Background(), seed)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	require.NoError(t, mock.ExpectationsWereMet())
}
