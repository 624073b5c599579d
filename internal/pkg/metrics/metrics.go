package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Strategy labels for sample requests.
const (
	StrategyShuffle = "shuffle"
	StrategyTag     = "random_tag"
)

// Outcome labels for sample requests.
const (
	OutcomeNone   = "none"
	OutcomeAll    = "all"
	OutcomeSubset = "subset"
)

type Metrics struct {
	ExercisesCreated prometheus.Counter
	ExercisesUpdated prometheus.Counter
	SampleRequests   *prometheus.CounterVec
	PickCount        prometheus.Histogram
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	EventsHandled    *prometheus.CounterVec
}

// New builds the service metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ExercisesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercises_created_total",
			Help: "Number of exercises inserted",
		}),
		ExercisesUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercises_updated_total",
			Help: "Number of exercises patched",
		}),
		SampleRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sample_requests_total",
			Help: "Random selection requests by strategy and outcome",
		}, []string{"strategy", "outcome"}),
		PickCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sample_pick_count",
			Help:    "Requested pick count of random selections",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapshot_cache_hits_total",
			Help: "Collection snapshots served from cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snapshot_cache_misses_total",
			Help: "Collection snapshots loaded from the store",
		}),
		EventsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercise_events_handled_total",
			Help: "Exercise events consumed from the local bus",
		}, []string{"type"}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{
		m.ExercisesCreated,
		m.ExercisesUpdated,
		m.SampleRequests,
		m.PickCount,
		m.CacheHits,
		m.CacheMisses,
		m.EventsHandled,
	} {
		errs = append(errs, reg.Register(c))
	}
	return m, errors.Join(errs...)
}

// NewUnregistered returns metrics that are recorded but never exported.
func NewUnregistered() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}
