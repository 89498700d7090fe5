package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the organization lifecycle module.
type Metrics struct {
	LifecycleOps       *prometheus.CounterVec
	SideEffectFailures *prometheus.CounterVec
	ServicesActive     prometheus.Gauge
}

// New creates a Metrics instance with all lifecycle metrics registered.
func New() *Metrics {
	return &Metrics{
		LifecycleOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_lifecycle_operations_total",
			Help: "Completed service lifecycle operations by kind",
		}, []string{"operation"}),
		SideEffectFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_side_effect_failures_total",
			Help: "Best-effort side effects that failed and were swallowed",
		}, []string{"effect"}),
		ServicesActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "registrar_services_activated",
			Help: "Service activations minus deactivations since start",
		}),
	}
}

// IncrementOp records a completed lifecycle operation.
func (m *Metrics) IncrementOp(operation string) {
	if m == nil {
		return
	}
	m.LifecycleOps.WithLabelValues(operation).Inc()
}

// IncrementSideEffectFailure records a swallowed side-effect failure.
func (m *Metrics) IncrementSideEffectFailure(effect string) {
	if m == nil {
		return
	}
	m.SideEffectFailures.WithLabelValues(effect).Inc()
}

// AddActiveServices moves the activation gauge by delta.
func (m *Metrics) AddActiveServices(delta int) {
	if m == nil {
		return
	}
	m.ServicesActive.Add(float64(delta))
}
