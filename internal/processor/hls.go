package processor

import (
	"context"
	"fmt"
)

// hlsBlocks is the fixed sequence of output chunks an HLSProcessor
// produces. Real encoding (AVFormatContext/AVCodecContext/AVFilterGraph
// plumbing) is out of scope for this repository; this processor stands
// in for it with deterministic, bounded output so the Stream Cache's
// admission, pump, and teardown logic can be exercised end to end without
// a real transcoder.
var hlsBlocks = [][]byte{
	[]byte("under-estimating tech debt will eventually be"),
	[]byte("come integral pa"),
	[]byte("rt of organization debt and hard to fix"),
}

// HLSProcessor implements Processor for processor_kind "hls".
type HLSProcessor struct {
	spec  Spec
	index int
	init  bool
}

// NewHLSProcessor is the Factory registered under "hls".
func NewHLSProcessor(spec Spec) (Processor, error) {
	if spec.DetailPath == "" {
		return nil, fmt.Errorf("hls processor: detail path is required")
	}
	return &HLSProcessor{spec: spec}, nil
}

func (p *HLSProcessor) Init(ctx context.Context) error {
	if p.spec.CryptoKeyID == "" {
		return fmt.Errorf("hls processor: missing crypto key id")
	}
	p.init = true
	return nil
}

func (p *HLSProcessor) Process(ctx context.Context) (Block, error) {
	if !p.init {
		return Block{}, fmt.Errorf("hls processor: Process called before Init")
	}
	if p.index >= len(hlsBlocks) {
		return Block{}, fmt.Errorf("hls processor: Process called after final block")
	}
	data := hlsBlocks[p.index]
	p.index++
	return Block{Data: data, IsFinal: p.index == len(hlsBlocks)}, nil
}

func (p *HLSProcessor) Deinit() error {
	p.init = false
	return nil
}
