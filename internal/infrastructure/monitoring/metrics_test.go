package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	m1 := NewMetrics()

	var m2 *Metrics
	require.NotPanics(t, func() { m2 = NewMetrics() })

	m1.StateSaves.Inc()
	m1.StateSaves.Inc()
	m2.StateSaves.Inc()

	assert.Equal(t, float64(2), counterValue(t, m1, "webdesk_state_saves_total"))
	assert.Equal(t, float64(1), counterValue(t, m2, "webdesk_state_saves_total"))
}

func TestMetricsGatherAllFamilies(t *testing.T) {
	m := NewMetrics()
	m.RecordStorageCall("upsert_windows", "ok", 0)
	m.RecordWSMessage("inbound", "sync")

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["webdesk_storage_calls_total"])
	assert.True(t, names["webdesk_ws_messages_total"])
	assert.True(t, names["webdesk_cache_errors_total"])
}
