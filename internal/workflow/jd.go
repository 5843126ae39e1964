package workflow

import (
	"context"
	"encoding/json"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

// jdTemperature loosens the writer step; everything else in the system
// generates deterministically.
const jdTemperature = 0.7

func (m *Machine) handleJD(ctx context.Context, st *State, input string) (*Turn, error) {
	history, turn, err := m.jd.Next(ctx, st.InterviewHistory, input)
	st.InterviewHistory = history
	if err != nil {
		return m.retryOnRejection(ctx, st, err,
			"I couldn't assemble the job description request from that. Could you fill in the missing details?")
	}
	if turn.Question != "" {
		return m.suspend(ctx, st, &Suspension{Kind: SuspendText, Phase: PhaseJD, Prompt: turn.Question}, nil)
	}

	st.JDRequest = turn.Result
	m.logger.Info("JD request gathered",
		logger.String("session", st.SessionID),
		logger.String("title", st.JDRequest.JobTitle),
	)

	raw, err := json.Marshal(st.JDRequest)
	if err != nil {
		return nil, err
	}
	jd, err := m.gen.GenerateText(ctx, prompts.JDWriter(string(raw)),
		llm.WithTemperature(jdTemperature), llm.WithNode("jd_writer"))
	if err != nil {
		return nil, err
	}

	return m.finish(ctx, st, jd, "That's the job description. Good luck with the search!")
}
