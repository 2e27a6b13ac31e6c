package ingest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/ingest"
	"github.com/trekscout/trekscout/internal/provider/resilience"
	"github.com/trekscout/trekscout/internal/trek"
)

const feedBody = `[
	{
		"id": "ih-roopkund",
		"name": "Roopkund Trek",
		"location": "Uttarakhand • Garhwal Himalayas",
		"difficulty": "Challenging",
		"duration": 8,
		"distance": 53,
		"maxElevation": 4800,
		"bestMonths": ["May", "June", "September"],
		"climate": "Alpine",
		"description": "Mystery lake trek.",
		"rating": 46,
		"reviewCount": 120,
		"highlights": ["Skeleton Lake"],
		"requirements": {"fitnessLevel": "Advanced", "experience": "Intermediate"},
		"price": 14500,
		"url": "https://indiahikes.com/treks/roopkund"
	},
	{
		"id": "ih-bad",
		"name": "Broken Entry",
		"location": "Nowhere",
		"difficulty": "Extreme",
		"duration": 0,
		"climate": "Alpine",
		"description": "Invalid.",
		"rating": 70
	},
	{
		"id": "ih-nag-tibba",
		"name": "Nag Tibba Trek",
		"location": "Uttarakhand",
		"country": "India",
		"difficulty": "Easy",
		"duration": 2,
		"bestMonths": ["December", "January"],
		"climate": "Temperate",
		"description": "Weekend trek near Mussoorie.",
		"rating": 42,
		"highlights": ["Snow views of Bandarpoonch"]
	}
]`

func feedClient(t *testing.T, name string, registry *resilience.Registry, trip bool) *resilience.Client {
	t.Helper()
	cb := resilience.DefaultCircuitBreakerConfig(name)
	cb.Timeout = time.Minute
	if trip {
		cb.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 2 }
	} else {
		cb.ReadyToTrip = func(gobreaker.Counts) bool { return false }
	}
	return resilience.NewClient(resilience.ClientConfig{
		Name:            name,
		Timeout:         5 * time.Second,
		MaxRetries:      2,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		CircuitBreaker:  &cb,
		Registry:        registry,
	})
}

func TestFeedSource_FetchTreks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	src := ingest.NewFeedSource(trek.ProviderIndiahikes, server.URL,
		feedClient(t, "indiahikes", registry, false), zerolog.Nop())

	treks, err := src.FetchTreks(context.Background())
	require.NoError(t, err)
	require.Len(t, treks, 2, "invalid entry is dropped")

	first := treks[0]
	assert.Equal(t, "Roopkund Trek", first.Name)
	assert.Equal(t, "India", first.Country)
	assert.Equal(t, trek.DifficultyChallenging, first.Difficulty)
	assert.Equal(t, trek.ProviderIndiahikes, first.Provider)
	require.NotNil(t, first.ProviderTrekID)
	assert.Equal(t, "ih-roopkund", *first.ProviderTrekID)
	require.NotNil(t, first.ProviderURL)
	assert.Equal(t, "https://indiahikes.com/treks/roopkund", *first.ProviderURL)
	require.NotNil(t, first.Requirements)
	assert.Equal(t, "Advanced", first.Requirements.FitnessLevel)

	assert.Equal(t, "ih-nag-tibba", *treks[1].ProviderTrekID)
	assert.Equal(t, []string{"Snow views of Bandarpoonch"}, treks[1].Highlights)

	health := registry.GetHealth("indiahikes")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)
}

func TestFeedSource_DropsEntriesWithoutHighlightsOrMonths(t *testing.T) {
	const base = `"name": "Kedarkantha", "location": "Uttarakhand", "difficulty": "Easy",
		"duration": 4, "climate": "Alpine", "description": "Winter summit.", "rating": 45`

	tests := []struct {
		name  string
		entry string
	}{
		{"no highlights or months", `{"id": "k1", ` + base + `}`},
		{"no highlights", `{"id": "k2", "bestMonths": ["January"], ` + base + `}`},
		{"empty highlights", `{"id": "k3", "bestMonths": ["January"], "highlights": [], ` + base + `}`},
		{"no months", `{"id": "k4", "highlights": ["Summit"], ` + base + `}`},
		{"blank month", `{"id": "k5", "bestMonths": [""], "highlights": ["Summit"], ` + base + `}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("[" + tt.entry + "]"))
			}))
			defer server.Close()

			src := ingest.NewFeedSource(trek.ProviderYHAI, server.URL,
				feedClient(t, "yhai", nil, false), zerolog.Nop())

			treks, err := src.FetchTreks(context.Background())
			require.NoError(t, err)
			assert.Empty(t, treks)
		})
	}
}

func TestFeedSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	src := ingest.NewFeedSource(trek.ProviderBikat, server.URL,
		feedClient(t, "bikat", nil, false), zerolog.Nop())

	treks, err := src.FetchTreks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, treks)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFeedSource_TripsBreaker(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	registry := resilience.NewRegistry()
	src := ingest.NewFeedSource(trek.ProviderYHAI, server.URL,
		feedClient(t, "yhai", registry, true), zerolog.Nop())

	_, err := src.FetchTreks(context.Background())
	require.Error(t, err)

	_, err = src.FetchTreks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)

	health := registry.GetHealth("yhai")
	require.NotNil(t, health)
	assert.True(t, health.IsUnhealthy())
	assert.NotEmpty(t, health.LastError)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFeedSource_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := ingest.NewFeedSource(trek.ProviderBikat, server.URL,
		feedClient(t, "bikat", nil, false), zerolog.Nop())

	_, err := src.FetchTreks(context.Background())
	var statusErr *resilience.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
