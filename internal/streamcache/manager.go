package streamcache

import (
	"context"

	"brm/internal/processor"
	"brm/pkg/models"
)

// Manager is the process-wide entry point for admitting cache entries: it
// binds a Backend, processor.Registry, and Metrics so callers don't have
// to thread them through on every call.
//
// Manager deliberately does NOT share a single *CacheEntry across
// concurrent callers racing on the same (DocBasepath, DetailPath). Each
// call to Init always performs its own, independent admission and gets
// back its own entry: a CacheEntry's reader/writer/processor are only
// safe to drive from one ProceedDataBlock/Deinit call chain at a time
// (see pump.go's proceeding guard), so handing the same entry to two
// callers lets the first one to fail or finish tear down state the other
// is still streaming through. Cross-request mutual exclusion on a miss is
// the advisory file lock's job (lock.go, acquired inside Init): per
// spec.md §5, "the loser reports an error and is expected to be retried
// by the caller after a delay" — that applies just as much to two
// goroutines in this process as it does to two separate processes.
type Manager struct {
	backend  models.Backend
	registry *processor.Registry
	metrics  *Metrics
}

// NewManager builds a Manager bound to one backend and processor registry.
func NewManager(backend models.Backend, registry *processor.Registry, metrics *Metrics) *Manager {
	return &Manager{backend: backend, registry: registry, metrics: metrics}
}

// Metrics returns the Metrics instance the Manager admits entries with, so
// callers driving ProceedDataBlock themselves (e.g. the HTTP handler) can
// record block-size observations against the same collectors.
func (mgr *Manager) Metrics() *Metrics {
	return mgr.metrics
}

// Init admits spec against the Manager's backend and registry. It is safe
// to call concurrently for the same spec from multiple goroutines: each
// call gets back its own CacheEntry, and at most one concurrent miss-path
// admission for the same artifact succeeds — the rest observe
// models.ErrLockContended, exactly as they would across processes.
func (mgr *Manager) Init(ctx context.Context, spec Spec, hooks Hooks) (*CacheEntry, error) {
	return Init(ctx, mgr.backend, mgr.registry, mgr.metrics, spec, hooks)
}
