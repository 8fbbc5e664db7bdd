package wire

import "github.com/prometheus/client_golang/prometheus"

// ParserMetrics counts parse outcomes by status, feeding spec.md 7's
// "differentiated abuse scoring" (wrong-magic vs. wrong-type vs.
// per-variant failure). A nil *ParserMetrics is safe to use -- every
// method is a no-op -- so wiring metrics into a Parser is opt-in.
type ParserMetrics struct {
	statusTotal *prometheus.CounterVec
}

// NewParserMetrics registers a status counter vector on reg and returns a
// ParserMetrics that increments it. Pass nil to register against the
// default registry, matching the common prometheus.MustRegister idiom.
func NewParserMetrics(reg prometheus.Registerer) *ParserMetrics {
	m := &ParserMetrics{
		statusTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "latticenet",
			Subsystem: "wire",
			Name:      "parse_status_total",
			Help:      "Count of datagrams parsed, labeled by resulting parse_status.",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.statusTotal)
	return m
}

func (m *ParserMetrics) observe(status ParseStatus) {
	if m == nil {
		return
	}
	m.statusTotal.WithLabelValues(status.String()).Inc()
}
