package pipeline

import (
	"context"
	"encoding/json"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

// ScoreWorker evaluates one structured resume against the session's
// hiring requirements. Bounded by the global evaluation semaphore.
type ScoreWorker struct {
	gen    llm.Generator
	limits *Limits
	logger logger.Logger
}

func NewScoreWorker(gen llm.Generator, limits *Limits, log logger.Logger) *ScoreWorker {
	return &ScoreWorker{
		gen:    gen,
		limits: limits,
		logger: log.Named("score"),
	}
}

// Process asks the model for the six category scores and computes the
// weighted final score deterministically in code.
func (w *ScoreWorker) Process(ctx context.Context, resume *models.ResumeData, reqs *models.HiringRequirements, node string) (*models.ScoredResume, error) {
	release, err := acquire(ctx, w.limits.score)
	if err != nil {
		return nil, err
	}
	defer release()

	reqsJSON, err := json.Marshal(reqs)
	if err != nil {
		return nil, err
	}
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil, err
	}

	var eval models.ResumeEvaluation
	prompt := prompts.Scoring(string(reqsJSON), string(resumeJSON))
	if err := w.gen.GenerateObject(ctx, prompt, models.EvaluationSchema(), &eval, llm.WithNode(node)); err != nil {
		return nil, err
	}

	eval.FinalWeightedScore = models.FinalWeightedScore(&eval, reqs.Weights)

	w.logger.Info("Evaluation done",
		logger.String("key", resume.SourceFile),
		logger.Float64("final_score", eval.FinalWeightedScore),
	)

	return &models.ScoredResume{
		Resume:     *resume,
		Evaluation: eval,
		FinalScore: eval.FinalWeightedScore,
		SourceFile: resume.SourceFile,
	}, nil
}
