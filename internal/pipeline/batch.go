package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/pkg/logger"
)

// Stage interfaces, defined at the consumer so tests can stub them.

type OCRStage interface {
	Process(ctx context.Context, bucket, key, node string) (string, error)
}

type StructureStage interface {
	Process(ctx context.Context, key, text, node string) (*models.ResumeData, error)
}

type ScoreStage interface {
	Process(ctx context.Context, resume *models.ResumeData, reqs *models.HiringRequirements, node string) (*models.ScoredResume, error)
}

// Runner drives batches through OCR -> structuring -> scoring. Stages are
// strictly sequential for one document; fan-out within a stage is bounded
// by that stage's global semaphore, not by the runner.
type Runner struct {
	ocr       OCRStage
	structure StructureStage
	score     ScoreStage
	bucket    string
	logger    logger.Logger
}

func NewRunner(ocr OCRStage, structure StructureStage, score ScoreStage, bucket string, log logger.Logger) *Runner {
	return &Runner{
		ocr:       ocr,
		structure: structure,
		score:     score,
		bucket:    bucket,
		logger:    log.Named("batch"),
	}
}

// RunAll dispatches every batch concurrently and merges their outputs.
// Each batch writes into its own slot and the group wait is the counting
// barrier, so every shard's contribution is merged exactly once no matter
// the completion order.
func (r *Runner) RunAll(ctx context.Context, batches []Batch) []models.ScoredResume {
	slots := make([][]models.ScoredResume, len(batches))

	g := new(errgroup.Group)
	for i, batch := range batches {
		g.Go(func() error {
			slots[i] = r.runBatch(ctx, batch)
			return nil
		})
	}
	g.Wait()

	merged := make([]models.ScoredResume, 0)
	for _, slot := range slots {
		merged = append(merged, slot...)
	}
	return merged
}

// runBatch runs the three stages for one batch. Stage failures are
// document-scoped: a failing document is dropped from the stage's output
// and never aborts its siblings.
func (r *Runner) runBatch(ctx context.Context, batch Batch) []models.ScoredResume {
	log := r.logger.With(logger.Int("batch_id", batch.ID))
	log.Info("Batch OCR starting", logger.Int("files", len(batch.Keys)))

	ocrResults := r.ocrFanout(ctx, batch, log)

	log.Info("Batch structuring", logger.Int("items", len(ocrResults)))
	structured := r.structureFanout(ctx, ocrResults)

	if len(structured) == 0 {
		return nil
	}

	log.Info("Batch evaluating", logger.Int("items", len(structured)))
	return r.scoreFanout(ctx, batch, structured, log)
}

func (r *Runner) ocrFanout(ctx context.Context, batch Batch, log logger.Logger) map[string]string {
	var mu sync.Mutex
	results := make(map[string]string, len(batch.Keys))

	g := new(errgroup.Group)
	for _, key := range batch.Keys {
		g.Go(func() error {
			text, err := r.ocr.Process(ctx, r.bucket, key, "batch_ocr")
			if err != nil {
				log.Error("OCR failed, skipping document",
					logger.String("key", key),
					logger.Error(err),
				)
				return nil
			}
			if text == "" {
				return nil
			}
			mu.Lock()
			results[key] = text
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return results
}

func (r *Runner) structureFanout(ctx context.Context, ocrResults map[string]string) []*models.ResumeData {
	var mu sync.Mutex
	structured := make([]*models.ResumeData, 0, len(ocrResults))

	g := new(errgroup.Group)
	for key, text := range ocrResults {
		g.Go(func() error {
			resume, err := r.structure.Process(ctx, key, text, "batch_structure")
			if err != nil || resume == nil {
				return nil
			}
			mu.Lock()
			structured = append(structured, resume)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return structured
}

func (r *Runner) scoreFanout(ctx context.Context, batch Batch, structured []*models.ResumeData, log logger.Logger) []models.ScoredResume {
	var mu sync.Mutex
	scored := make([]models.ScoredResume, 0, len(structured))

	g := new(errgroup.Group)
	for _, resume := range structured {
		g.Go(func() error {
			result, err := r.score.Process(ctx, resume, batch.Reqs, "batch_evaluate")
			if err != nil {
				log.Error("Evaluation failed, skipping candidate",
					logger.String("key", resume.SourceFile),
					logger.Error(err),
				)
				return nil
			}
			mu.Lock()
			scored = append(scored, *result)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return scored
}
