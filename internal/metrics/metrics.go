// Package metrics exports Prometheus instrumentation for the draft workflow.
package metrics

import (
	"github.com/jonathan/portfolio-drafter/internal/drafting"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts draft workflow events. It implements drafting.Observer and
// is safe for concurrent use.
type Recorder struct {
	results  *prometheus.CounterVec
	attempts prometheus.Counter
	throttle prometheus.Counter
	backoff  prometheus.Histogram
}

// NewRecorder creates a Recorder and registers its collectors on reg.
// A nil reg leaves the collectors unregistered.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_draft_results_total",
				Help: "Total number of resolved draft invocations by outcome",
			},
			[]string{"outcome"},
		),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_draft_attempts_total",
			Help: "Total number of requests sent to the generation API",
		}),
		throttle: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_draft_throttles_total",
			Help: "Total number of rate-limited (429) responses",
		}),
		backoff: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portfolio_draft_backoff_seconds",
			Help:    "Backoff delays scheduled after throttled attempts",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16},
		}),
	}

	if reg != nil {
		reg.MustRegister(r.results, r.attempts, r.throttle, r.backoff)
	}
	return r
}

// OnDraftEvent implements drafting.Observer.
func (r *Recorder) OnDraftEvent(e drafting.Event) {
	switch e.Kind {
	case drafting.EventAttempt:
		r.attempts.Inc()
	case drafting.EventThrottled:
		r.throttle.Inc()
		if e.Delay > 0 {
			r.backoff.Observe(e.Delay.Seconds())
		}
	case drafting.EventResolved:
		r.results.WithLabelValues(string(e.Outcome)).Inc()
	}
}
