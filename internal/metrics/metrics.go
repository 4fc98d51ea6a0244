package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records shortener outcomes. It satisfies shortener.Recorder.
type Metrics struct {
	// OperationsTotal counts calls by operation (shorten, expand) and result.
	OperationsTotal *prometheus.CounterVec

	// RegistryEntries is the number of entries held by the session registry.
	RegistryEntries prometheus.Gauge
}

// New builds the collectors and registers them with reg.
// reg may be nil, in which case nothing is registered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shortener_operations_total",
				Help: "Total number of shorten and expand calls",
			},
			[]string{"operation", "result"},
		),
		RegistryEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "shortener_registry_entries",
				Help: "Current number of entries in the registry",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.OperationsTotal, m.RegistryEntries)
	}
	return m
}

func (m *Metrics) Observe(operation, result string) {
	m.OperationsTotal.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) SetEntries(n int) {
	m.RegistryEntries.Set(float64(n))
}
