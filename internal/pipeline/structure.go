package pipeline

import (
	"context"
	"time"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

// StructureWorker turns one document's raw OCR text into a structured
// resume record. Bounded by the global structuring semaphore.
type StructureWorker struct {
	gen        llm.Generator
	limits     *Limits
	maxRetries int
	logger     logger.Logger

	// sleep is swapped out in tests to observe the backoff.
	sleep func(time.Duration)
}

func NewStructureWorker(gen llm.Generator, limits *Limits, maxRetries int, log logger.Logger) *StructureWorker {
	return &StructureWorker{
		gen:        gen,
		limits:     limits,
		maxRetries: maxRetries,
		logger:     log.Named("structure"),
		sleep:      time.Sleep,
	}
}

// Process extracts a resume record from raw text. Empty text is skipped
// without a model call. Up to maxRetries attempts with linear backoff
// between them; exhaustion drops the document (nil, last error).
func (w *StructureWorker) Process(ctx context.Context, key, text, node string) (*models.ResumeData, error) {
	if text == "" {
		return nil, nil
	}

	release, err := acquire(ctx, w.limits.structure)
	if err != nil {
		return nil, err
	}
	defer release()

	prompt := prompts.Structure(text)

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		var resume models.ResumeData
		err := w.gen.GenerateObject(ctx, prompt, models.ResumeSchema(), &resume, llm.WithNode(node))
		if err == nil {
			resume.SourceFile = key
			resume.Enrich()
			w.logger.Info("Structuring done", logger.String("key", key))
			return &resume, nil
		}

		lastErr = err
		if attempt < w.maxRetries {
			w.sleep(time.Duration(attempt) * time.Second)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	w.logger.Error("Structuring failed, dropping document",
		logger.String("key", key),
		logger.Int("attempts", w.maxRetries),
		logger.Error(lastErr),
	)
	return nil, lastErr
}
