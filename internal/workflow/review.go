package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hiresift/hiresift/internal/agent"
	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/internal/pipeline"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

// topCandidates is how many evaluated candidates the ranking narrative
// covers.
const topCandidates = 3

func (m *Machine) handleHiring(ctx context.Context, st *State, input string) (*Turn, error) {
	history, turn, err := m.hiring.Next(ctx, st.InterviewHistory, input)
	st.InterviewHistory = history
	if err != nil {
		return m.retryOnRejection(ctx, st, err,
			"I couldn't put the requirements together from that. Could you go over the missing parts again?")
	}
	if turn.Question != "" {
		return m.suspend(ctx, st, &Suspension{Kind: SuspendText, Phase: PhaseHiring, Prompt: turn.Question}, nil)
	}

	st.Requirements = turn.Result
	m.logger.Info("Hiring requirements gathered",
		logger.String("session", st.SessionID),
		logger.String("role", st.Requirements.RoleTitle),
	)

	return m.suspend(ctx, st, &Suspension{
		Kind:   SuspendUpload,
		Phase:  PhaseAwaitUpload,
		Prompt: fmt.Sprintf("Requirements noted. Upload the resume PDFs to the %q bucket, then tell me when you're done.", m.resumeBucket),
		Bucket: m.resumeBucket,
	}, nil)
}

// handleUpload runs the whole scoring pipeline: list, shard, process,
// persist, rank, and prepare the Q&A context. It only returns to the
// user once the batch is done.
func (m *Machine) handleUpload(ctx context.Context, st *State) (*Turn, error) {
	keys, err := m.objects.List(ctx, st.Awaiting.Bucket)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		susp := *st.Awaiting
		susp.Prompt = fmt.Sprintf("I don't see any PDFs in the %q bucket yet. Upload them and tell me when they're in.", susp.Bucket)
		return m.suspend(ctx, st, &susp, nil)
	}

	m.logger.Info("Processing resume batch",
		logger.String("session", st.SessionID),
		logger.Int("files", len(keys)),
	)

	scored := m.runner.RunAll(ctx, pipeline.Shard(keys, st.Requirements))
	if len(scored) == 0 {
		susp := *st.Awaiting
		susp.Prompt = fmt.Sprintf("None of the %d file(s) could be processed. Check they are readable PDFs and tell me when to retry.", len(keys))
		return m.suspend(ctx, st, &susp, nil)
	}

	persisted := 0
	for i := range scored {
		if err := m.store.UpsertCandidate(ctx, &scored[i]); err != nil {
			m.logger.Error("Candidate not persisted",
				logger.String("key", scored[i].SourceFile),
				logger.Error(err),
			)
			continue
		}
		persisted++
	}

	replies := []string{fmt.Sprintf("Evaluated %d of %d resume(s); %d stored.", len(scored), len(keys), persisted)}

	if narrative, err := m.rankNarrative(ctx); err != nil {
		m.logger.Error("Ranking narrative failed", logger.Error(err))
	} else if narrative != "" {
		replies = append(replies, narrative)
	}

	st.SchemaSketch = m.prepareSketch(ctx)

	return m.suspend(ctx, st, &Suspension{
		Kind:   SuspendText,
		Phase:  PhaseQA,
		Prompt: "Ask me anything about the evaluated candidates.",
	}, replies)
}

func (m *Machine) rankNarrative(ctx context.Context) (string, error) {
	top, err := m.store.TopByScore(ctx, topCandidates)
	if err != nil {
		return "", err
	}
	if len(top) == 0 {
		return "", nil
	}
	return m.gen.GenerateText(ctx, prompts.RankSummary(candidateDigest(top)), llm.WithNode("rank_summary"))
}

// prepareSketch derives the Q&A schema sketch from one stored document.
// Any failure degrades to an empty sketch; the Q&A loop still runs, just
// without field guidance.
func (m *Machine) prepareSketch(ctx context.Context) string {
	doc, err := m.store.SampleDocument(ctx)
	if err != nil || doc == nil {
		if err != nil {
			m.logger.Warn("Schema sketch unavailable", logger.Error(err))
		}
		return "{}"
	}
	raw, err := json.Marshal(Sketch(doc))
	if err != nil {
		m.logger.Warn("Schema sketch unavailable", logger.Error(err))
		return "{}"
	}
	return string(raw)
}

func (m *Machine) handleQA(ctx context.Context, st *State, input string) (*Turn, error) {
	qa := agent.NewQAAgent(m.gen, m.store, st.SchemaSketch, m.logger)

	history, answer, err := qa.Answer(ctx, st.QAHistory, input)
	st.QAHistory = history
	if errors.Is(err, agent.ErrSearchBudget) {
		answer = "I couldn't pin that down from the stored candidates. Try a more specific question."
	} else if err != nil {
		return nil, err
	}

	return m.suspend(ctx, st, &Suspension{
		Kind:   SuspendText,
		Phase:  PhaseQA,
		Prompt: "Anything else about the candidates?",
	}, []string{answer})
}

// candidateDigest renders the ranked candidates for the narrative prompt.
func candidateDigest(top []models.ScoredResume) string {
	var sb strings.Builder
	for i, c := range top {
		name := c.SourceFile
		if c.Resume.PersonalInfo != nil && c.Resume.PersonalInfo.FullName != "" {
			name = c.Resume.PersonalInfo.FullName
		}
		fmt.Fprintf(&sb, "%d. %s (final score %.2f, file %s)\n", i+1, name, c.FinalScore, c.SourceFile)
		for _, line := range []struct {
			label string
			cat   models.CategoryScore
		}{
			{"hard skills", c.Evaluation.HardSkillsScore},
			{"experience", c.Evaluation.ExperienceScore},
			{"education", c.Evaluation.EducationScore},
			{"university tier", c.Evaluation.UniversityTierScore},
			{"soft skills", c.Evaluation.SoftSkillsScore},
			{"military status", c.Evaluation.MilitaryStatusScore},
		} {
			fmt.Fprintf(&sb, "   - %s: %d. %s\n", line.label, line.cat.Score, line.cat.Reasoning)
		}
		if c.Evaluation.SummaryExplanation != "" {
			fmt.Fprintf(&sb, "   Summary: %s\n", c.Evaluation.SummaryExplanation)
		}
	}
	return sb.String()
}
