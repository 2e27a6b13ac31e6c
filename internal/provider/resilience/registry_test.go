package resilience_test

import (
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekscout/trekscout/internal/provider/resilience"
)

func registeredClient(registry *resilience.Registry, name string) *resilience.Client {
	cfg := resilience.DefaultClientConfig(name)
	cfg.Registry = registry
	return resilience.NewClient(cfg)
}

func TestRegistry_RegisterAndGetHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	client := registeredClient(registry, "bikat")

	assert.Equal(t, 1, registry.ProviderCount())
	assert.Equal(t, "bikat", client.Name())

	health := registry.GetHealth("bikat")
	require.NotNil(t, health)
	assert.Equal(t, "bikat", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
}

func TestRegistry_Unregister(t *testing.T) {
	registry := resilience.NewRegistry()
	_ = registeredClient(registry, "bikat")

	registry.Unregister("bikat")

	assert.Equal(t, 0, registry.ProviderCount())
	assert.Nil(t, registry.GetHealth("bikat"))
}

func TestRegistry_RecordOutcomes(t *testing.T) {
	registry := resilience.NewRegistry()
	_ = registeredClient(registry, "yhai")

	health := registry.GetHealth("yhai")
	require.NotNil(t, health)
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	registry.RecordSuccess("yhai")
	registry.RecordFailure("yhai", assert.AnError)

	health = registry.GetHealth("yhai")
	require.NotNil(t, health.LastSuccessAt)
	require.NotNil(t, health.LastFailureAt)
	assert.WithinDuration(t, time.Now(), *health.LastSuccessAt, time.Second)
	assert.Equal(t, assert.AnError.Error(), health.LastError)
}

func TestRegistry_GetAllHealthIsSortedByName(t *testing.T) {
	registry := resilience.NewRegistry()
	for _, name := range []string{"yhai", "indiahikes", "bikat"} {
		_ = registeredClient(registry, name)
	}

	health := registry.GetAllHealth()
	require.Len(t, health, 3)
	assert.Equal(t, "bikat", health[0].Name)
	assert.Equal(t, "indiahikes", health[1].Name)
	assert.Equal(t, "yhai", health[2].Name)
}

func TestRegistry_UnknownProviderIsIgnored(t *testing.T) {
	registry := resilience.NewRegistry()

	assert.Nil(t, registry.GetHealth("nonexistent"))
	registry.RecordSuccess("nonexistent")
	registry.RecordFailure("nonexistent", assert.AnError)
	assert.Equal(t, 0, registry.ProviderCount())
}

func TestProviderHealth_States(t *testing.T) {
	tests := []struct {
		state      gobreaker.State
		isHealthy  bool
		isDegraded bool
		isUnhealth bool
	}{
		{gobreaker.StateClosed, true, false, false},
		{gobreaker.StateHalfOpen, false, true, false},
		{gobreaker.StateOpen, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			h := &resilience.ProviderHealth{CircuitState: tt.state}
			assert.Equal(t, tt.isHealthy, h.IsHealthy())
			assert.Equal(t, tt.isDegraded, h.IsDegraded())
			assert.Equal(t, tt.isUnhealth, h.IsUnhealthy())
		})
	}
}
