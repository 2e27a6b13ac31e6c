package trek_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/api/models"
	"github.com/trekscout/trekscout/internal/trek"
)

func TestService_List(t *testing.T) {
	service := trek.NewService(trek.NewInMemoryCatalog(trek.Seed()...))

	list, err := service.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, list.Meta.Count)
	require.Len(t, list.Items, 6)
	assert.Equal(t, "Everest Base Camp", list.Items[0].Name)
	assert.Equal(t, 4.8, list.Items[0].DisplayRating)
	assert.Equal(t, models.DifficultyChallenging, list.Items[0].Difficulty)
	assert.Equal(t, "custom", list.Items[0].Provider)
}

func TestService_Get(t *testing.T) {
	service := trek.NewService(trek.NewInMemoryCatalog(trek.Seed()...))

	got, err := service.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Inca Trail", got.Name)
	require.NotNil(t, got.Requirements)
	assert.Equal(t, "Intermediate", got.Requirements.FitnessLevel)

	_, err = service.Get(context.Background(), "99")
	assert.True(t, errors.Is(err, trek.ErrTrekNotFound))
}

func TestToAPI_EmptySlicesEncodeAsArrays(t *testing.T) {
	got := trek.ToAPI(&trek.Trek{ID: "x", Rating: 1})
	assert.NotNil(t, got.BestMonths)
	assert.NotNil(t, got.Highlights)
	assert.Equal(t, 0.1, got.DisplayRating)
}
