package cart

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the cart-level gauges and counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Commands      *prometheus.CounterVec
	Lines         prometheus.Gauge
	Units         prometheus.Gauge
	StorageErrors *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_commands_total",
				Help: "Cart commands applied",
			},
			[]string{"command"},
		),
		Lines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_lines",
			Help: "Distinct products in the cart",
		}),
		Units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_items",
			Help: "Total units in the cart",
		}),
		StorageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_storage_errors_total",
				Help: "Failed cart snapshot reads and writes",
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(m.Commands, m.Lines, m.Units, m.StorageErrors)
	return m
}

func (m *Metrics) command(name string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(name).Inc()
}

func (m *Metrics) observe(c Cart) {
	if m == nil {
		return
	}
	m.Lines.Set(float64(len(c)))
	m.Units.Set(float64(TotalCount(c)))
}

func (m *Metrics) storageError(op string) {
	if m == nil {
		return
	}
	m.StorageErrors.WithLabelValues(op).Inc()
}
