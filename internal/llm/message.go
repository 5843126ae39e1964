package llm

import "google.golang.org/genai"

// Message roles. Tool results are carried as a distinct role so the
// workflow state stays a flat, serializable transcript.
const (
	RoleUser  = "user"
	RoleModel = "model"
	RoleTool  = "tool"
)

// Message is one turn in a conversation. Exactly one of Text, Call or
// ToolResult is meaningful; the struct is JSON-serializable so message
// histories can be checkpointed with the workflow state.
type Message struct {
	Role       string         `json:"role"`
	Text       string         `json:"text,omitempty"`
	Call       *ToolCall      `json:"call,omitempty"`
	ToolResult *ToolResult    `json:"tool_result,omitempty"`
}

// ToolCall is a structured invocation emitted by the model.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ToolResult is the observation fed back for a previous ToolCall.
type ToolResult struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// UserMessage builds a plain user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// ToolErrorMessage builds a corrective observation for a failed tool call.
func ToolErrorMessage(name, errText string) Message {
	return Message{Role: RoleTool, ToolResult: &ToolResult{Name: name, Content: errText, IsError: true}}
}

// ToolResultMessage builds a successful observation for a tool call.
func ToolResultMessage(name, content string) Message {
	return Message{Role: RoleTool, ToolResult: &ToolResult{Name: name, Content: content}}
}

func toContents(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case RoleModel:
			parts := []*genai.Part{}
			if m.Text != "" {
				parts = append(parts, &genai.Part{Text: m.Text})
			}
			if m.Call != nil {
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{Name: m.Call.Name, Args: m.Call.Args},
				})
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: parts})
		case RoleTool:
			if m.ToolResult == nil {
				continue
			}
			response := map[string]any{"output": m.ToolResult.Content}
			if m.ToolResult.IsError {
				response = map[string]any{"error": m.ToolResult.Content}
			}
			contents = append(contents, &genai.Content{
				Role: genai.RoleUser,
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{Name: m.ToolResult.Name, Response: response},
				}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: m.Text}},
			})
		}
	}
	return contents
}
