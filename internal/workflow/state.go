package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/models"
)

// Phase marks where a session is in the workflow graph.
type Phase string

const (
	PhaseRouter        Phase = "router"
	PhaseHiring        Phase = "hiring_interview"
	PhaseAwaitUpload   Phase = "await_upload"
	PhaseQA            Phase = "database_qa"
	PhaseJD            Phase = "jd_interview"
	PhaseCompareUpload Phase = "compare_upload"
	PhaseCompareQA     Phase = "compare_qa"
)

// Intent values committed by the router.
const (
	IntentReview  = "REVIEW"
	IntentWrite   = "WRITE"
	IntentCompare = "COMPARE"
)

// SuspensionKind tells the front-end what the workflow is waiting for.
type SuspensionKind string

const (
	SuspendText   SuspensionKind = "text"
	SuspendUpload SuspensionKind = "upload"
)

// Suspension describes an open wait on the user. It is part of the
// checkpointed state, so a restarted process knows exactly what input the
// session needs next.
type Suspension struct {
	Kind     SuspensionKind `json:"kind"`
	Phase    Phase          `json:"phase"`
	Prompt   string         `json:"prompt"`
	Bucket   string         `json:"bucket,omitempty"`
	MaxFiles int            `json:"max_files,omitempty"`
}

// State is the full serializable session state. Everything a resumed
// process needs lives here as data; there is no call stack to restore.
type State struct {
	SessionID string `json:"session_id"`
	Intent    string `json:"intent,omitempty"`

	RouterHistory    []llm.Message `json:"router_history,omitempty"`
	InterviewHistory []llm.Message `json:"interview_history,omitempty"`
	QAHistory        []llm.Message `json:"qa_history,omitempty"`

	Requirements *models.HiringRequirements    `json:"requirements,omitempty"`
	JDRequest    *models.JobDescriptionRequest `json:"jd_request,omitempty"`

	SchemaSketch  string `json:"schema_sketch,omitempty"`
	CompareReport string `json:"compare_report,omitempty"`

	Awaiting *Suspension `json:"awaiting,omitempty"`
}

func newState(sessionID string) *State {
	return &State{SessionID: sessionID}
}

func encodeState(st *State) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	return raw, nil
}

func decodeState(raw []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &st, nil
}
