package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the engine's optional Prometheus collectors. The zero
// value (a nil *Registry) is valid and every method on it is a no-op.
type Registry struct {
	executions prometheus.Counter
	updateTime *prometheus.HistogramVec
}

// NewRegistry creates a Registry and registers its collectors with reg. If
// reg is nil, prometheus.DefaultRegisterer is used.
func NewRegistry(reg prometheus.Registerer) *Registry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Registry{
		executions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowrs_executions_total",
			Help: "Number of epochs run by the executor.",
		}),
		updateTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "flowrs_node_update_duration_seconds",
			Help: "Duration of a single node's OnUpdate call.",
		}, []string{"node_id", "node_kind"}),
	}

	reg.MustRegister(r.executions, r.updateTime)
	return r
}

// IncExecutions records the start of a new epoch.
func (r *Registry) IncExecutions() {
	if r == nil {
		return
	}
	r.executions.Inc()
}

// ObserveUpdateDuration records how long a node's OnUpdate call took.
func (r *Registry) ObserveUpdateDuration(nodeID, nodeKind string, d time.Duration) {
	if r == nil {
		return
	}
	r.updateTime.WithLabelValues(nodeID, nodeKind).Observe(d.Seconds())
}
