package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hiresift/hiresift/internal/agent"
	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
	"github.com/hiresift/hiresift/internal/pipeline"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

const greeting = "Hi! I can score a batch of resumes against a role, write a job description, or compare a few resumes side by side. What would you like to do?"

// ObjectLister is the slice of the object store the machine needs.
type ObjectLister interface {
	List(ctx context.Context, bucket string) ([]string, error)
}

// CandidateStore is the slice of the document store the machine needs.
type CandidateStore interface {
	UpsertCandidate(ctx context.Context, c *models.ScoredResume) error
	TopByScore(ctx context.Context, n int) ([]models.ScoredResume, error)
	SampleDocument(ctx context.Context) (bson.M, error)
	RawQuery(ctx context.Context, filter, projection bson.M) ([]bson.M, error)
}

// BatchRunner drives sharded batches through the pipeline stages.
type BatchRunner interface {
	RunAll(ctx context.Context, batches []pipeline.Batch) []models.ScoredResume
}

// Turn is what one Start or Resume call hands back to the front-end:
// zero or more messages to display, then either an open wait or the end
// of the session.
type Turn struct {
	Replies   []string
	Suspended *Suspension
	Done      bool
}

// Config wires a Machine's collaborators.
type Config struct {
	Generator     llm.Generator
	Objects       ObjectLister
	Candidates    CandidateStore
	Checkpoints   CheckpointStore
	Runner        BatchRunner
	OCR           pipeline.OCRStage
	ResumeBucket  string
	CompareBucket string
	Logger        logger.Logger
}

// Machine is the session workflow: a phase graph whose waits on the user
// are durable. Each Start/Resume call loads state, advances it as far as
// it can without user input, checkpoints, and returns.
type Machine struct {
	gen           llm.Generator
	objects       ObjectLister
	store         CandidateStore
	checkpoints   CheckpointStore
	runner        BatchRunner
	ocr           pipeline.OCRStage
	resumeBucket  string
	compareBucket string
	logger        logger.Logger

	router *agent.Interview[agent.RouteDecision]
	hiring *agent.Interview[models.HiringRequirements]
	jd     *agent.Interview[models.JobDescriptionRequest]
}

func NewMachine(cfg Config) *Machine {
	log := cfg.Logger.Named("workflow")

	return &Machine{
		gen:           cfg.Generator,
		objects:       cfg.Objects,
		store:         cfg.Candidates,
		checkpoints:   cfg.Checkpoints,
		runner:        cfg.Runner,
		ocr:           cfg.OCR,
		resumeBucket:  cfg.ResumeBucket,
		compareBucket: cfg.CompareBucket,
		logger:        log,

		router: agent.NewInterview(cfg.Generator, prompts.Router(), agent.RouterTool(),
			validateRoute, "router", log),
		hiring: agent.NewInterview(cfg.Generator, prompts.HiringInterview(), agent.SubmitHiringTool(),
			(*models.HiringRequirements).Validate, "hiring_interview", log),
		jd: agent.NewInterview(cfg.Generator, prompts.JDInterview(), agent.SubmitJDTool(),
			(*models.JobDescriptionRequest).Validate, "jd_interview", log),
	}
}

func validateRoute(d *agent.RouteDecision) error {
	switch d.Path {
	case IntentReview, IntentWrite, IntentCompare:
		return nil
	}
	return fmt.Errorf("unknown path %q", d.Path)
}

// Start opens a session. A session whose checkpoint survives a previous
// process picks up at its open wait instead of starting over.
func (m *Machine) Start(ctx context.Context, sessionID string) (*Turn, error) {
	raw, err := m.checkpoints.LoadCheckpoint(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		st, err := decodeState(raw)
		if err == nil && st.Awaiting != nil {
			m.logger.Info("Session resumed from checkpoint",
				logger.String("session", sessionID),
				logger.String("phase", string(st.Awaiting.Phase)),
			)
			return &Turn{
				Replies:   []string{"Picking up where we left off."},
				Suspended: st.Awaiting,
			}, nil
		}
		// Unreadable or closed checkpoint: start over.
		if err != nil {
			m.logger.Warn("Discarding unreadable checkpoint", logger.String("session", sessionID), logger.Error(err))
		}
	}

	st := newState(sessionID)
	return m.suspend(ctx, st, &Suspension{Kind: SuspendText, Phase: PhaseRouter, Prompt: greeting}, nil)
}

// Resume applies one user input to the session's open wait and advances
// the workflow to its next wait or to completion. An exit sentinel at any
// wait ends the session and drops its checkpoint.
func (m *Machine) Resume(ctx context.Context, sessionID, input string) (*Turn, error) {
	raw, err := m.checkpoints.LoadCheckpoint(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("no active session %s", sessionID)
	}
	st, err := decodeState(raw)
	if err != nil {
		return nil, err
	}
	if st.Awaiting == nil {
		return nil, fmt.Errorf("session %s is not awaiting input", sessionID)
	}

	if isExit(input) {
		return m.finish(ctx, st, "Session ended.")
	}

	switch st.Awaiting.Phase {
	case PhaseRouter:
		return m.handleRouter(ctx, st, input)
	case PhaseHiring:
		return m.handleHiring(ctx, st, input)
	case PhaseAwaitUpload:
		return m.handleUpload(ctx, st)
	case PhaseQA:
		return m.handleQA(ctx, st, input)
	case PhaseJD:
		return m.handleJD(ctx, st, input)
	case PhaseCompareUpload:
		return m.handleCompareUpload(ctx, st, input)
	case PhaseCompareQA:
		return m.handleCompareQA(ctx, st, input)
	default:
		return nil, fmt.Errorf("session %s: unknown phase %q", sessionID, st.Awaiting.Phase)
	}
}

func (m *Machine) handleRouter(ctx context.Context, st *State, input string) (*Turn, error) {
	history, turn, err := m.router.Next(ctx, st.RouterHistory, input)
	st.RouterHistory = history
	if err != nil {
		return m.retryOnRejection(ctx, st, err,
			"I didn't catch what you'd like to do. Could you rephrase?")
	}
	if turn.Question != "" {
		return m.suspend(ctx, st, &Suspension{Kind: SuspendText, Phase: PhaseRouter, Prompt: turn.Question}, nil)
	}

	st.Intent = turn.Result.Path
	m.logger.Info("Intent routed", logger.String("session", st.SessionID), logger.String("path", st.Intent))

	switch st.Intent {
	case IntentReview:
		// The routed utterance opens the interview.
		return m.handleHiring(ctx, st, input)
	case IntentWrite:
		return m.handleJD(ctx, st, input)
	default:
		return m.suspend(ctx, st, &Suspension{
			Kind:     SuspendUpload,
			Phase:    PhaseCompareUpload,
			Prompt:   fmt.Sprintf("Upload up to %d PDFs to the %q bucket, then tell me when you're done.", maxCompareFiles, m.compareBucket),
			Bucket:   m.compareBucket,
			MaxFiles: maxCompareFiles,
		}, nil)
	}
}

// retryOnRejection keeps the session at its current phase when a
// sub-agent ran out of corrective re-asks; any other error propagates so
// the checkpoint stays at the previous wait and the turn can be retried.
func (m *Machine) retryOnRejection(ctx context.Context, st *State, err error, prompt string) (*Turn, error) {
	var verr *agent.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}
	m.logger.Warn("Submission rejected, asking again",
		logger.String("session", st.SessionID),
		logger.Error(verr),
	)
	susp := *st.Awaiting
	susp.Prompt = prompt
	return m.suspend(ctx, st, &susp, nil)
}

// suspend checkpoints the state with an open wait and hands it back.
func (m *Machine) suspend(ctx context.Context, st *State, susp *Suspension, replies []string) (*Turn, error) {
	st.Awaiting = susp
	raw, err := encodeState(st)
	if err != nil {
		return nil, err
	}
	if err := m.checkpoints.SaveCheckpoint(ctx, st.SessionID, raw); err != nil {
		return nil, err
	}
	return &Turn{Replies: replies, Suspended: susp}, nil
}

// finish ends the session and drops its checkpoint.
func (m *Machine) finish(ctx context.Context, st *State, replies ...string) (*Turn, error) {
	if err := m.checkpoints.DeleteCheckpoint(ctx, st.SessionID); err != nil {
		m.logger.Warn("Checkpoint not deleted", logger.String("session", st.SessionID), logger.Error(err))
	}
	return &Turn{Replies: replies, Done: true}, nil
}

func isExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "exit", "quit":
		return true
	}
	return false
}
