package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/smallnest/flowrs-go/metrics"
	"github.com/stretchr/testify/require"
)

func TestNilRegistryIsInert(t *testing.T) {
	t.Parallel()

	var r *metrics.Registry
	require.NotPanics(t, func() {
		r.IncExecutions()
		r.ObserveUpdateDuration("node-1", "add", time.Millisecond)
	})
}

func TestRegistryRecordsExecutions(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := metrics.NewRegistry(reg)

	r.IncExecutions()
	r.IncExecutions()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "flowrs_executions_total" {
			found = f
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.Metric, 1)
	require.Equal(t, float64(2), found.Metric[0].GetCounter().GetValue())
}
