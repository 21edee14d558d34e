package filter

import (
	"github.com/VictoriaMetrics/metrics"
)

// Metrics are the counters a Filter maintains.
type Metrics struct {
	engaged      *metrics.Counter
	skipped      *metrics.Counter
	aborted      *metrics.Counter
	bytesRead    *metrics.Counter
	bytesWritten *metrics.Counter
}

// NewMetrics returns the filter counters registered in set. Filters sharing
// a set share the counters.
func NewMetrics(set *metrics.Set) *Metrics {
	return &Metrics{
		engaged:      set.GetOrCreateCounter(`htmlstrip_responses_total{decision="engaged"}`),
		skipped:      set.GetOrCreateCounter(`htmlstrip_responses_total{decision="skipped"}`),
		aborted:      set.GetOrCreateCounter(`htmlstrip_aborted_streams_total`),
		bytesRead:    set.GetOrCreateCounter(`htmlstrip_bytes_read_total`),
		bytesWritten: set.GetOrCreateCounter(`htmlstrip_bytes_written_total`),
	}
}
