package adapter

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts field writes by bound field and operation ("replace" or "clear").
// A nil *Metrics records nothing.
type Metrics struct {
	fieldWrites *prometheus.CounterVec
}

// NewMetrics registers the adapter collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		fieldWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transcribe_field_writes_total",
				Help: "Total number of metadata field writes performed by the adapter.",
			},
			[]string{"field", "op"},
		),
	}
	if err := reg.Register(m.fieldWrites); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) fieldWrite(field, op string) {
	if m == nil {
		return
	}
	m.fieldWrites.WithLabelValues(field, op).Inc()
}
