package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterSessionsFinished.Inc()
	m.CounterCaloriesBurned.Add(325)
	m.CounterChatReplies.With(prometheus.Labels{"source": "rule"}).Inc()
	m.GaugeActiveSessions.Set(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterSessionsFinished))
	assert.Equal(t, float64(325), testutil.ToFloat64(m.CounterCaloriesBurned))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterChatReplies.With(prometheus.Labels{"source": "rule"})))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.GaugeActiveSessions))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
		if f.GetName() == "fitforge_test_server_active_workout_sessions" {
			assert.Equal(t, dto.MetricType_GAUGE, f.GetType())
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, float64(2), f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, names["fitforge_test_server_workout_sessions_finished"])
	assert.True(t, names["fitforge_test_server_calories_burned"])
	assert.True(t, names["fitforge_test_server_active_workout_sessions"])
}

func TestSetupPrometheus(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_collector_total", Help: "x"})
	reg := SetupPrometheus(extra)
	extra.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "extra_collector_total" {
			found = true
		}
	}
	assert.True(t, found)
}
