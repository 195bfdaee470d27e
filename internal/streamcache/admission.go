package streamcache

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"brm/internal/processor"
	"brm/pkg/models"
)

// Init performs cache lookup and admission: it resolves spec against
// backend, and returns either a CacheEntry in ServeFromCache mode (the
// artifact already exists) or FillFromProducer mode (a miss, now admitted
// and primed with the processor's first block). A non-nil CacheEntry
// returned alongside a non-nil error is still safe (and required) to pass
// to Deinit, matching the contract that teardown must be reachable from
// any terminal state; hooks.OnInitDone fires exactly once either way. The
// one exception is a spec that fails validation: Init then returns a nil
// entry and does not fire OnInitDone.
func Init(ctx context.Context, backend models.Backend, registry *processor.Registry, m *Metrics, spec Spec, hooks Hooks) (*CacheEntry, error) {
	if err := spec.Validate(); err != nil {
		m.observeAdmission("error")
		return nil, err
	}

	ctx, span := startAdmissionSpan(ctx, spec)
	defer span.End()

	detailPath := spec.detailFullPath()
	entry := &CacheEntry{
		backend:    backend,
		detailPath: detailPath,
		requestID:  newRequestID(),
		hooks:      hooks,
		Errors:     models.ErrorReport{},
	}

	// Step 2: ensure parent directories of the artifact exist. The leaf
	// document directory itself is assumed pre-created at upload time.
	if err := backend.Mkdir(ctx, parentDir(detailPath), true); err != nil {
		wrapped := fmt.Errorf("%w: %v", models.ErrMkdirFailed, err)
		m.observeAdmission("error")
		span.SetStatus(codes.Error, err.Error())
		entry.Errors = entry.Errors.Add("storage", wrapped)
		if hooks.OnInitDone != nil {
			hooks.OnInitDone(entry)
		}
		return entry, wrapped
	}

	// Step 3: attempt the hit path first.
	exists, err := backend.Exists(ctx, detailPath)
	if err != nil {
		m.observeAdmission("error")
		span.SetStatus(codes.Error, err.Error())
		entry.Errors = entry.Errors.Add("storage", err)
		if hooks.OnInitDone != nil {
			hooks.OnInitDone(entry)
		}
		return entry, err
	}
	if exists {
		// An artifact whose fill is still in progress is present but its
		// lock is held: report contention instead of serving it as a hit.
		probe, err := acquireLock(backend.LockPath(detailPath))
		if err != nil {
			m.observeLockContention()
			m.observeAdmission("error")
			span.SetStatus(codes.Error, err.Error())
			entry.Errors = entry.Errors.Add("storage", err)
			if hooks.OnInitDone != nil {
				hooks.OnInitDone(entry)
			}
			return entry, err
		}
		_ = probe.release()
		return initHit(ctx, entry, m)
	}
	return initMiss(ctx, entry, registry, m, spec)
}

func initHit(ctx context.Context, entry *CacheEntry, m *Metrics) (*CacheEntry, error) {
	reader, err := entry.backend.OpenRead(ctx, entry.detailPath)
	if err != nil {
		m.observeAdmission("error")
		entry.Errors = entry.Errors.Add("storage", err)
		if entry.hooks.OnInitDone != nil {
			entry.hooks.OnInitDone(entry)
		}
		return entry, err
	}

	entry.Mode = ServeFromCache
	entry.reader = reader
	m.observeAdmission("hit")
	if entry.hooks.OnInitDone != nil {
		entry.hooks.OnInitDone(entry)
	}
	return entry, nil
}

// initMiss implements admission steps 4-6: read metadata, instantiate the
// named processor, acquire the lock and open the artifact for writing,
// then prime the producer bridge with one block before returning.
func initMiss(ctx context.Context, entry *CacheEntry, registry *processor.Registry, m *Metrics, spec Spec) (*CacheEntry, error) {
	entry.Mode = FillFromProducer

	fail := func(subsystem string, err error) (*CacheEntry, error) {
		entry.Errors = entry.Errors.Add(subsystem, err)
		_ = entry.lock.release()
		m.observeAdmission("error")
		if entry.hooks.OnInitDone != nil {
			entry.hooks.OnInitDone(entry)
		}
		return entry, err
	}

	meta, err := LoadMetadata(ctx, entry.backend, spec.DocBasepath)
	if err != nil {
		return fail("metadata", err)
	}

	proc, err := registry.Create(meta.ProcessorKind, processor.Spec{
		UsrID:       meta.UsrID,
		UpldReqID:   meta.UpldReqID,
		CryptoKeyID: meta.CryptoKeyID,
		DetailPath:  spec.DetailPath,
	})
	if err != nil {
		return fail("transcoder", err)
	}
	entry.Processor = proc

	// proc.Init and the lock acquisition don't depend on each other, so
	// they run concurrently: a processor with a slow Init (opening its own
	// source-asset handles) doesn't add its latency on top of the lock
	// attempt, or vice versa.
	var initErr, lockErr error
	var eg errgroup.Group
	eg.Go(func() error {
		if err := proc.Init(ctx); err != nil {
			initErr = fmt.Errorf("%w: %v", models.ErrProcessorFailed, err)
			return initErr
		}
		return nil
	})
	eg.Go(func() error {
		lock, err := acquireLock(entry.backend.LockPath(entry.detailPath))
		if err != nil {
			m.observeLockContention()
			lockErr = err
			return err
		}
		entry.lock = lock
		return nil
	})
	if err := eg.Wait(); err != nil {
		if initErr != nil {
			return fail("transcoder", initErr)
		}
		return fail("storage", lockErr)
	}

	writer, err := entry.backend.OpenWrite(ctx, entry.detailPath)
	if err != nil {
		return fail("storage", err)
	}
	entry.writer = writer

	// Producer bridge: prime the first block now so a processor that
	// fails immediately is reported from Init, not from the caller's
	// first ProceedDataBlock call.
	block, err := proc.Process(ctx)
	if err != nil {
		return fail("transcoder", fmt.Errorf("%w: %v", models.ErrProcessorFailed, err))
	}
	if _, err := writer.Write(block.Data); err != nil {
		return fail("storage", err)
	}
	entry.firstBlock = &block

	m.observeAdmission("miss")
	if entry.hooks.OnInitDone != nil {
		entry.hooks.OnInitDone(entry)
	}
	return entry, nil
}

func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return path
}
