package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports operation durations and outcome counts through
// a Prometheus registry.
type PrometheusRecorder struct {
	durations *prometheus.HistogramVec
	outcomes  *prometheus.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder registers the optithor collectors with reg and
// returns the recorder. Registering twice against the same registry fails,
// mirroring prometheus semantics.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "optithor",
			Name:      "operation_duration_seconds",
			Help:      "Duration of engine and repository operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "optithor",
			Name:      "operation_outcomes_total",
			Help:      "Operation completions partitioned by outcome.",
		}, []string{"operation", "outcome"}),
	}
	if err := reg.Register(r.durations); err != nil {
		return nil, err
	}
	if err := reg.Register(r.outcomes); err != nil {
		return nil, err
	}
	return r, nil
}

// Observe records one completed operation.
func (r *PrometheusRecorder) Observe(operation string, duration time.Duration, outcome string) {
	r.durations.WithLabelValues(operation).Observe(duration.Seconds())
	r.outcomes.WithLabelValues(operation, outcome).Inc()
}
