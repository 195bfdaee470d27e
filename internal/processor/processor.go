// Package processor resolves a cache entry's processor_kind to a concrete
// producer of stream blocks and drives it to completion.
package processor

import "context"

// Block is one unit of producer output. IsFinal marks the last block of
// the stream; once observed, the caller must not request another block.
type Block struct {
	Data    []byte
	IsFinal bool
}

// Processor produces a stream's content one block at a time. Init performs
// any setup needed before the first block can be produced (opening the
// source asset, validating the crypto key, etc.); Deinit releases whatever
// Init acquired regardless of how many blocks were produced.
type Processor interface {
	Init(ctx context.Context) error
	Process(ctx context.Context) (Block, error)
	Deinit() error
}

// Spec carries what a Processor needs to know about the source asset it is
// deriving the stream from. Fields mirror pkg/models.CacheMetadata because
// that is exactly where they come from at admission time.
type Spec struct {
	UsrID       uint32
	UpldReqID   uint32
	CryptoKeyID string
	DetailPath  string
}

// Factory constructs a Processor for one fill operation. Registered under
// a processor_kind string in a Registry.
type Factory func(spec Spec) (Processor, error)
