package streamcache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors this package updates. A nil
// *Metrics is valid everywhere it's used — observeXxx methods below no-op
// on a nil receiver so wiring metrics is optional, not mandatory, for
// callers that only want the cache core.
type Metrics struct {
	admissionTotal *prometheus.CounterVec
	lockContended  prometheus.Counter
	blockBytes     prometheus.Histogram
}

// NewMetrics registers the Stream Cache's collectors against reg and
// returns a Metrics ready to pass into Manager. A nil reg gets its own
// private registry, which is convenient for tests that construct several
// independent Metrics in the same process. Registering against a shared
// registry (e.g. prometheus.DefaultRegisterer) more than once — a second
// server instance in the same process, or a second test in the same
// package — reuses the already-registered collectors instead of
// panicking, since AlreadyRegisteredError carries the original back.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		admissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streamcache_admission_total",
			Help: "Count of Init calls by outcome (hit, miss, error).",
		}, []string{"outcome"}),
		lockContended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "streamcache_lock_contention_total",
			Help: "Count of Init calls that failed due to lock contention.",
		}),
		blockBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "streamcache_block_bytes",
			Help:    "Size in bytes of blocks returned from ProceedDataBlock.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 8),
		}),
	}

	if err := reg.Register(m.admissionTotal); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.admissionTotal = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			panic(err)
		}
	}
	if err := reg.Register(m.lockContended); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.lockContended = are.ExistingCollector.(prometheus.Counter)
		} else {
			panic(err)
		}
	}
	if err := reg.Register(m.blockBytes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			m.blockBytes = are.ExistingCollector.(prometheus.Histogram)
		} else {
			panic(err)
		}
	}
	return m
}

func (m *Metrics) observeAdmission(outcome string) {
	if m == nil {
		return
	}
	m.admissionTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeLockContention() {
	if m == nil {
		return
	}
	m.lockContended.Inc()
}

func (m *Metrics) observeBlockBytes(n int) {
	if m == nil {
		return
	}
	m.blockBytes.Observe(float64(n))
}
