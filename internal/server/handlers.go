package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"brm/internal/streamcache"
	"brm/pkg/models"
	"brm/utils"
)

// statusHandler shows runtime information
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	fmt.Fprintf(w, "Media Stream Cache Status\n")
	fmt.Fprintf(w, "=========================\n")
	fmt.Fprintf(w, "Goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(w, "OS Threads: %d\n", runtime.NumCPU())
	fmt.Fprintf(w, "Memory Allocated: %d KB\n", m.Alloc/1024)
	fmt.Fprintf(w, "Memory Total: %d KB\n", m.TotalAlloc/1024)
	fmt.Fprintf(w, "GC Cycles: %d\n", m.NumGC)
	fmt.Fprintf(w, "Goroutine Info: %+v\n", utils.GetGoroutineInfo())

	s.logger.Info("Status endpoint accessed", "goroutines", runtime.NumGoroutine(), "port", s.port)
}

// streamHandler is the "out of scope" consumer named by the stream
// cache's contract, made concrete: it resolves a streamcache.Spec from
// the request path, admits the cache entry, and pumps blocks straight to
// the response as they become available, flushing after every block so a
// miss-path fill streams to the client as it's produced rather than
// buffering the whole artifact first.
func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("docId")
	detailPath := r.PathValue("detailPath")
	if docID == "" || detailPath == "" {
		http.Error(w, "docId and detailPath are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	spec := streamcache.Spec{DocBasepath: docID, DetailPath: detailPath}

	entry, err := s.manager.Init(ctx, spec, streamcache.Hooks{})
	if err != nil {
		s.logger.Error("stream admission failed", "docId", docID, "detailPath", detailPath, "error", err)
		if entry != nil {
			_ = entry.Deinit()
		}
		writeAdmissionError(w, err)
		return
	}
	defer func() {
		if err := entry.Deinit(); err != nil {
			s.logger.Error("stream teardown reported errors", "docId", docID, "detailPath", detailPath, "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/octet-stream")
	flusher, _ := w.(http.Flusher)

	for {
		block, err := entry.ProceedDataBlock(ctx, s.manager.Metrics())
		if err != nil {
			s.logger.Error("stream proceed failed", "docId", docID, "detailPath", detailPath, "error", err)
			return
		}
		if len(block.Data) > 0 {
			if _, err := w.Write(block.Data); err != nil {
				s.logger.Error("stream write failed", "docId", docID, "detailPath", detailPath, "error", err)
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if block.IsFinal {
			return
		}
	}
}

// writeAdmissionError maps the stream cache's sentinel errors to the HTTP
// statuses the original spec's caller contract implies: lock contention
// is retryable (409), missing metadata is a permanently unprocessable
// request (422), everything else is an opaque server failure.
func writeAdmissionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrLockContended):
		http.Error(w, "artifact build already in progress", http.StatusConflict)
	case errors.Is(err, models.ErrMissingMetadata):
		http.Error(w, "document metadata missing or invalid", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
