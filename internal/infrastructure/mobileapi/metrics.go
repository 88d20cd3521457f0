package mobileapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess   = "success"
	outcomeAPIError  = "api_error"
	outcomeBuild     = "build_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

// Metrics holds Prometheus metrics for backend calls.
type Metrics struct {
	requests *prometheus.CounterVec   // By operation and outcome
	duration *prometheus.HistogramVec // By operation
}

// NewMetrics creates the client metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mmsdk",
			Subsystem: "mobile_api",
			Name:      "requests_total",
			Help:      "Total number of backend requests by operation and outcome",
		}, []string{"operation", "outcome"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mmsdk",
			Subsystem: "mobile_api",
			Name:      "request_duration_seconds",
			Help:      "Backend request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(operation, outcome string, since time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	if !since.IsZero() {
		m.duration.WithLabelValues(operation).Observe(time.Since(since).Seconds())
	}
}
