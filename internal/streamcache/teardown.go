package streamcache

import "brm/pkg/models"

// Deinit releases everything an entry may be holding: the producer, the
// advisory lock, and any open file handles. It is idempotent and safe to
// call on an entry that failed partway through Init — including one
// that never got past the mkdir step — because every field it touches is
// nil-safe on its own. A second (or later) call is a pure no-op that
// returns nil without re-closing anything, per spec.md §8's "at most
// once" teardown invariant: repeat calls must not re-close exhausted
// handles and must not surface manufactured "already closed" errors.
func (e *CacheEntry) Deinit() error {
	if !e.tornDown.CompareAndSwap(false, true) {
		return nil
	}

	errs := models.ErrorReport{}
	for k, v := range e.Errors {
		errs[k] = v
	}

	// teardownErrs holds only failures of teardown itself; errors recorded
	// earlier (e.g. a failed admission) stay in e.Errors but are not
	// returned from Deinit.
	teardownErrs := models.ErrorReport{}
	if e.Processor != nil {
		if err := e.Processor.Deinit(); err != nil {
			teardownErrs = teardownErrs.Add("transcoder", err)
		}
	}
	if e.writer != nil {
		if err := e.writer.Close(); err != nil {
			teardownErrs = teardownErrs.Add("storage", err)
		}
	}
	if e.reader != nil {
		if err := e.reader.Close(); err != nil {
			teardownErrs = teardownErrs.Add("storage", err)
		}
	}
	if err := e.lock.release(); err != nil {
		teardownErrs = teardownErrs.Add("storage", err)
	}
	for k, v := range teardownErrs {
		errs[k] = append(errs[k], v...)
	}

	e.Errors = errs
	if e.hooks.OnDeinitDone != nil {
		e.hooks.OnDeinitDone(e)
	}
	if teardownErrs.Empty() {
		return nil
	}
	return teardownErrs
}
