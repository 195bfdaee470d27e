package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the Stream Cache's own error kinds. Callers should
// prefer errors.Is over string matching on the errors Init and
// ProceedDataBlock return; ErrorReport below is the accumulating sink the
// admission/pump contract reports through, and it keeps error messages as
// plain strings.
var (
	ErrLockContended   = errors.New("streamcache: artifact lock contended")
	ErrMissingMetadata = errors.New("streamcache: metadata not found")
	ErrMkdirFailed     = errors.New("streamcache: detail path creation failed")
	ErrProcessorFailed = errors.New("streamcache: processor reported an error")
	ErrAlreadyFinal    = errors.New("streamcache: proceed called after final block")
	ErrConcurrentCall  = errors.New("streamcache: concurrent proceed call on same entry")
)

// ErrorReport is the typed side-channel callers accumulate subsystem
// failures into, mirroring the error_sink concept: callbacks observe it
// instead of a single error value because admission can legitimately
// record more than one independent failure (e.g. a storage error AND a
// processor deinit error during teardown).
type ErrorReport map[string][]string

// Add records err's message under subsystem; a nil err is ignored.
func (r ErrorReport) Add(subsystem string, err error) ErrorReport {
	if r == nil {
		r = ErrorReport{}
	}
	if err == nil {
		return r
	}
	r[subsystem] = append(r[subsystem], err.Error())
	return r
}

// Count returns the total number of recorded errors across all subsystems.
func (r ErrorReport) Count() int {
	n := 0
	for _, msgs := range r {
		n += len(msgs)
	}
	return n
}

// Empty reports whether no subsystem recorded a failure.
func (r ErrorReport) Empty() bool {
	return r.Count() == 0
}

// Error satisfies the error interface so an ErrorReport with Count() > 0
// can be returned directly where a single error is expected.
func (r ErrorReport) Error() string {
	return fmt.Sprintf("streamcache: %d error(s) across %d subsystem(s)", r.Count(), len(r))
}
