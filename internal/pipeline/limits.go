package pipeline

import (
	"context"

	"github.com/hiresift/hiresift/config"
)

// Limits is the process-wide resource pool gating the three pipeline
// stages. One instance is constructed at startup and shared by every
// shard and session, so a single large batch cannot starve the others.
type Limits struct {
	ocr       chan struct{}
	structure chan struct{}
	score     chan struct{}
}

func NewLimits(cfg *config.PipelineConfig) *Limits {
	return &Limits{
		ocr:       make(chan struct{}, cfg.OCRWorkers),
		structure: make(chan struct{}, cfg.StructureWorkers),
		score:     make(chan struct{}, cfg.EvalWorkers),
	}
}

func acquire(ctx context.Context, sem chan struct{}) (release func(), err error) {
	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
