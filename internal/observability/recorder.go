// Package observability provides the metrics recorder used by the
// optimization engine and the compound repository. Implementations exist
// for process-local expvar export and for Prometheus.
package observability

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Recorder receives one observation per completed operation: its name, how
// long it ran, and the outcome label (e.g. "ok", "infeasible",
// "validation_error").
type Recorder interface {
	Observe(operation string, duration time.Duration, outcome string)
}

// NoopRecorder discards all observations.
type NoopRecorder struct{}

func (NoopRecorder) Observe(string, time.Duration, string) {}

var expvarSeq uint64

// ExpvarRecorder publishes aggregate timing and outcome counters via
// expvar, for deployments that prefer process-local metrics without
// external dependencies. Durations accumulate in milliseconds per
// operation.
type ExpvarRecorder struct {
	name      string
	mu        sync.Mutex
	durations map[string]float64
	outcomes  map[string]map[string]int64
}

// ExpvarSnapshot captures a read-only view of the recorded metrics.
type ExpvarSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Outcomes    map[string]map[string]int64 `json:"outcomes_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarRecorder constructs an expvar-backed recorder and publishes it
// under the supplied name. When name is empty, a unique identifier is
// generated.
func NewExpvarRecorder(name string) *ExpvarRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("optithor_metrics_%d", id)
	}
	rec := &ExpvarRecorder{
		name:      name,
		durations: make(map[string]float64),
		outcomes:  make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarRecorder) Name() string { return r.name }

// Observe accumulates one operation outcome.
func (r *ExpvarRecorder) Observe(operation string, duration time.Duration, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[operation] += float64(duration) / float64(time.Millisecond)
	byOutcome, ok := r.outcomes[operation]
	if !ok {
		byOutcome = make(map[string]int64)
		r.outcomes[operation] = byOutcome
	}
	byOutcome[outcome]++
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarRecorder) Snapshot() ExpvarSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]float64, len(r.durations))
	for op, total := range r.durations {
		durations[op] = total
	}
	outcomes := make(map[string]map[string]int64, len(r.outcomes))
	for op, counts := range r.outcomes {
		cpy := make(map[string]int64, len(counts))
		for outcome, n := range counts {
			cpy[outcome] = n
		}
		outcomes[op] = cpy
	}
	return ExpvarSnapshot{
		DurationsMS: durations,
		Outcomes:    outcomes,
		RecordedAt:  time.Now().UTC(),
	}
}
