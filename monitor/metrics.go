package monitor

import (
	"errors"
	"time"

	"github.com/poiesic/wayfarer/core"
	"github.com/poiesic/wayfarer/search"
	"github.com/prometheus/client_golang/prometheus"
)

// Failure reasons used as the "reason" label of the failures counter.
const (
	ReasonEmptyQuery     = "empty_query"
	ReasonUnknownPassion = "unknown_passion"
	ReasonOther          = "other"
)

// Metrics holds the Prometheus collectors shared by every search.
type Metrics struct {
	Searches   prometheus.Counter
	Failures   *prometheus.CounterVec
	Degenerate prometheus.Counter
	Results    prometheus.Histogram
	Duration   prometheus.Histogram
}

// NewMetrics creates the search collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfarer_searches_total",
			Help: "Total number of searches started",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfarer_search_failures_total",
			Help: "Total number of searches that returned an error",
		}, []string{"reason"}),
		Degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wayfarer_degenerate_candidates_total",
			Help: "Candidates scored without any endorsements",
		}),
		Results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfarer_search_results",
			Help:    "Number of locations returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfarer_search_duration_seconds",
			Help:    "Duration of searches in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.Searches, m.Failures, m.Degenerate, m.Results, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Monitor returns a SearchMonitor for a single search.
func (m *Metrics) Monitor() search.SearchMonitor {
	return &searchMetrics{metrics: m}
}

type searchMetrics struct {
	metrics *Metrics
	started time.Time
}

func (s *searchMetrics) Start(_ []core.Passion) {
	s.started = time.Now()
	s.metrics.Searches.Inc()
}

func (s *searchMetrics) AfterCandidateSelection(_ core.Passion, _ int) {}

func (s *searchMetrics) DegenerateLocation(_ *core.Location) {
	s.metrics.Degenerate.Inc()
}

func (s *searchMetrics) Scored(_ *core.ScoredLocation) {}

func (s *searchMetrics) Failed(err error) {
	s.metrics.Failures.WithLabelValues(failureReason(err)).Inc()
	s.metrics.Duration.Observe(time.Since(s.started).Seconds())
}

func (s *searchMetrics) Finish(results []*core.ScoredLocation) {
	s.metrics.Results.Observe(float64(len(results)))
	s.metrics.Duration.Observe(time.Since(s.started).Seconds())
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return ReasonEmptyQuery
	case errors.Is(err, search.ErrUnknownPassion):
		return ReasonUnknownPassion
	default:
		return ReasonOther
	}
}
