package agent

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/hiresift/hiresift/internal/models"
)

// Tool names as the model sees them.
const (
	ToolRoute            = "router_tool"
	ToolSubmitHiring     = "submit_hiring_requirements"
	ToolSubmitJD         = "submit_jd_requirements"
	ToolSearchCandidates = "search_database"
)

// RouteDecision is the router tool's payload.
type RouteDecision struct {
	Path string `json:"path"`
}

func RouterTool() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolRoute,
		Description: "Commit to one of the supported task paths once the user's intent is clear.",
		Parameters:  models.RouterSchema(),
	}
}

func SubmitHiringTool() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolSubmitHiring,
		Description: "Submit the finalized hiring requirements. Call only when every required field has been gathered from the user.",
		Parameters:  models.HiringRequirementsSchema(),
	}
}

func SubmitJDTool() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolSubmitJD,
		Description: "Submit the finalized job description request. Call only when every required field has been gathered from the user.",
		Parameters:  models.JDRequestSchema(),
	}
}

func SearchCandidatesTool() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        ToolSearchCandidates,
		Description: "Run a MongoDB find query against the evaluated candidates collection. Returns at most ten matching documents as JSON.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"query": {
					Type:        genai.TypeString,
					Description: "MongoDB filter document as a JSON string, e.g. {\"final_score\": {\"$gte\": 70}}.",
				},
				"projection": {
					Type:        genai.TypeString,
					Description: "Optional MongoDB projection document as a JSON string.",
				},
			},
			Required: []string{"query"},
		},
	}
}

// decodeArgs maps a tool call's loosely typed argument map onto a typed
// payload via a JSON round trip.
func decodeArgs[T any](args map[string]any) (*T, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode tool args: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode tool args: %w", err)
	}
	return &out, nil
}
