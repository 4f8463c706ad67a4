package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "primecheck"

// Verdict labels.
const (
	LabelPrime     = "prime"
	LabelComposite = "composite"
	LabelNotPrime  = "not_prime"
	LabelError     = "error"
)

// Recorder owns a private Prometheus registry for one process. The CLI is
// short-lived, so nothing is served; the registry is dumped to a textfile
// for node_exporter's textfile collector.
type Recorder struct {
	registry *prometheus.Registry

	checks        *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	candidateBits prometheus.Gauge
	mismatches    prometheus.Counter
	heapBytes     prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		// Labels: strategy, verdict (prime, composite, not_prime, error)
		checks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Primality checks run, by strategy and verdict.",
		}, []string{"strategy", "verdict"}),
		// Labels: strategy
		checkDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Wall time of a primality check.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 10),
		}, []string{"strategy"}),
		candidateBits: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidate_bits",
			Help:      "Bit length of the last candidate checked.",
		}),
		mismatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdict_mismatches_total",
			Help:      "Comparisons where strategies disagreed.",
		}),
		heapBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap in use at the end of the run.",
		}),
	}
}

// ObserveCheck records one strategy run. verdict is one of the Label*
// constants.
func (r *Recorder) ObserveCheck(strategy, verdict string, d time.Duration) {
	r.checks.WithLabelValues(strategy, verdict).Inc()
	r.checkDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// SetCandidateBits records the size of the candidate.
func (r *Recorder) SetCandidateBits(bits int) {
	r.candidateBits.Set(float64(bits))
}

// IncMismatch records a cross-validation failure.
func (r *Recorder) IncMismatch() {
	r.mismatches.Inc()
}

// ObserveMemory records a memory snapshot.
func (r *Recorder) ObserveMemory(s MemorySnapshot) {
	r.heapBytes.Set(float64(s.HeapAlloc))
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes all metrics to path in the Prometheus
// text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
