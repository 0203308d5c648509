package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterSessionsSaved.WithLabelValues("create").Inc()
	m.CounterSessionsSaved.WithLabelValues("create").Inc()
	m.CounterSessionsSaved.WithLabelValues("replace").Inc()
	m.CounterProgressQueries.WithLabelValues("e1rm").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterSessionsSaved.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterSessionsSaved.WithLabelValues("replace")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterProgressQueries.WithLabelValues("e1rm")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "fitness_tracker_test_server_sessions_saved")
	assert.Contains(t, names, "fitness_tracker_test_server_progress_queries")
}
