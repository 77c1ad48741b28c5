package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline outcomes per document type.
type Metrics struct {
	Processed *prometheus.CounterVec
	Filtered  *prometheus.CounterVec
	Invalid   *prometheus.CounterVec
}

// NewMetrics builds the counters and registers them on reg (pass nil to
// skip registration, e.g. in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parse_documents_processed_total",
			Help: "Documents that completed the normalization pipeline.",
		}, []string{"doc_type"}),
		Filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parse_documents_filtered_total",
			Help: "Documents dropped by the relevance filter.",
		}, []string{"doc_type"}),
		Invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parse_invalid_fields_total",
			Help: "Field values that failed normalization and were tagged.",
		}, []string{"doc_type"}),
	}
	if reg != nil {
		reg.MustRegister(m.Processed, m.Filtered, m.Invalid)
	}
	return m
}
