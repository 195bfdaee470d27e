package streamcache

import (
	"context"
	"errors"
	"fmt"

	"brm/internal/processor"
	"brm/pkg/models"
)

// readBufferSize bounds one hit-path read; it plays the role of the
// source contract's fixed-capacity entry buffer.
const readBufferSize = 64 * 1024

// ProceedDataBlock drives exactly one block, hit or miss, and returns it
// directly in addition to firing hooks.OnProceedDone. Concurrent calls on
// the same entry are rejected with models.ErrConcurrentCall; a call after
// the final block was already delivered is rejected with
// models.ErrAlreadyFinal — both are additive safety nets the source
// contract leaves undefined.
func (e *CacheEntry) ProceedDataBlock(ctx context.Context, m *Metrics) (processor.Block, error) {
	if !e.proceeding.CompareAndSwap(false, true) {
		return processor.Block{}, models.ErrConcurrentCall
	}
	defer e.proceeding.Store(false)

	if e.finalDelivered {
		return processor.Block{}, models.ErrAlreadyFinal
	}

	ctx, span := startProceedSpan(ctx, e.Mode)
	defer span.End()

	var block processor.Block
	var err error
	if e.Mode == ServeFromCache {
		block, err = e.proceedHit()
	} else {
		block, err = e.proceedMiss(ctx)
	}

	if err != nil {
		subsystem := "storage"
		if errors.Is(err, models.ErrProcessorFailed) {
			subsystem = "transcoder"
		}
		e.Errors = e.Errors.Add(subsystem, err)
		if e.hooks.OnProceedDone != nil {
			e.hooks.OnProceedDone(e, processor.Block{})
		}
		return processor.Block{}, err
	}

	m.observeBlockBytes(len(block.Data))
	if block.IsFinal {
		e.finalDelivered = true
	}
	if e.hooks.OnProceedDone != nil {
		e.hooks.OnProceedDone(e, block)
	}
	return block, nil
}

// proceedHit reads up to readBufferSize bytes from the cached artifact.
// A short read (fewer bytes than requested, or zero on the very first
// call) marks the block final, mirroring the boundary behavior for a hit
// smaller than the buffer.
func (e *CacheEntry) proceedHit() (processor.Block, error) {
	buf := make([]byte, readBufferSize)
	n, err := e.reader.Read(buf)
	if err != nil && n == 0 {
		if isEOF(err) {
			return processor.Block{IsFinal: true}, nil
		}
		return processor.Block{}, fmt.Errorf("streamcache: read cached artifact: %w", err)
	}
	isFinal := n < readBufferSize || isEOF(err)
	return processor.Block{Data: buf[:n], IsFinal: isFinal}, nil
}

// proceedMiss drives one producer step and tees its output to storage,
// unless a block was already primed during admission, in which case it
// is delivered here without a further processor call.
func (e *CacheEntry) proceedMiss(ctx context.Context) (processor.Block, error) {
	if e.firstBlock != nil {
		block := *e.firstBlock
		e.firstBlock = nil
		return block, nil
	}

	block, err := e.Processor.Process(ctx)
	if err != nil {
		return processor.Block{}, fmt.Errorf("%w: %v", models.ErrProcessorFailed, err)
	}
	if _, err := e.writer.Write(block.Data); err != nil {
		return processor.Block{}, fmt.Errorf("streamcache: write artifact block: %w", err)
	}
	return block, nil
}

func isEOF(err error) bool {
	return err != nil && err.Error() == "EOF"
}
