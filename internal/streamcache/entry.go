// Package streamcache implements the on-demand, content-addressed stream
// cache: an artifact is either already present on a Backend (cache hit,
// served straight from storage) or missing (cache miss, filled from a
// processor.Processor while being streamed out). Mutual exclusion on a
// miss — across processes and across goroutines within one process alike
// — is the advisory file lock acquired during admission; see Manager and
// lock.go.
package streamcache

import (
	"sync/atomic"

	"github.com/google/uuid"

	"brm/internal/processor"
	"brm/pkg/models"
)

// Mode distinguishes how a CacheEntry is being served.
type Mode int

const (
	// FillFromProducer means the artifact was missing at admission time;
	// ProceedDataBlock pulls blocks from a Processor and tees them to
	// storage as they're produced.
	FillFromProducer Mode = iota
	// ServeFromCache means the artifact already existed; ProceedDataBlock
	// reads directly from storage.
	ServeFromCache
)

func (m Mode) String() string {
	if m == ServeFromCache {
		return "serve_from_cache"
	}
	return "fill_from_producer"
}

// Hooks are the optional callbacks Init, ProceedDataBlock and Deinit fire
// synchronously as each transition happens — the idiomatic-Go stand-in for the source
// contract's on_init_done/on_deinit_done/on_proceed_done callback
// arguments. Passing a zero Hooks is valid; callers who only want the
// direct (result, error) return from each method can ignore this
// entirely.
type Hooks struct {
	OnInitDone    func(*CacheEntry)
	OnDeinitDone  func(*CacheEntry)
	OnProceedDone func(*CacheEntry, processor.Block)
}

// CacheEntry is the handle returned by Init. Init together with its two
// public methods, ProceedDataBlock and Deinit, mirror the spec's three
// public entry points.
type CacheEntry struct {
	Mode      Mode
	Processor processor.Processor
	Errors    models.ErrorReport

	// UserData is an arbitrary caller-owned value threaded through
	// without interpretation — the typed side-channel replacing an
	// indexed pointer array.
	UserData any

	hooks      Hooks
	backend    models.Backend
	detailPath string
	lock       *lockHandle
	writer     models.WriteHandle
	reader     models.ReadHandle
	requestID  string

	firstBlock     *processor.Block
	finalDelivered bool
	proceeding     atomic.Bool
	tornDown       atomic.Bool
}

// newRequestID stamps a correlation id for this fill, in the spirit of
// the teacher's temp-hash generation for in-flight artifacts.
func newRequestID() string {
	return uuid.NewString()
}
