package httpvalidator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "swaggerguard"

// Request outcomes, used as the "outcome" label.
const (
	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Metrics holds the Prometheus collectors a Validator reports to.
type Metrics struct {
	// RequestsTotal counts validated requests by outcome and, for invalid
	// requests, the location of the first failure.
	RequestsTotal *prometheus.CounterVec

	// Duration observes how long ValidateRequest took.
	Duration prometheus.Histogram
}

// NewMetrics creates the validator metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_validated_total",
			Help:      "Total number of HTTP requests validated",
		}, []string{"outcome", "location"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_validation_duration_seconds",
			Help:      "Time spent validating one HTTP request in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
	for _, c := range []prometheus.Collector{m.RequestsTotal, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observe records one ValidateRequest call. A nil Metrics records nothing.
func (m *Metrics) observe(start time.Time, result *RequestResult, err error) {
	if m == nil {
		return
	}
	m.Duration.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		m.RequestsTotal.WithLabelValues(outcomeError, "").Inc()
	case result.Valid:
		m.RequestsTotal.WithLabelValues(outcomeValid, "").Inc()
	default:
		m.RequestsTotal.WithLabelValues(outcomeInvalid, string(result.Location)).Inc()
	}
}
