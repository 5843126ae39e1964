package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"google.golang.org/genai"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/internal/prompts"
	"github.com/hiresift/hiresift/pkg/logger"
)

// maxSearchIterations bounds the query/observe loop for one question.
const maxSearchIterations = 6

// ErrSearchBudget is returned when the loop hits the iteration cap
// without the model producing a textual answer.
var ErrSearchBudget = errors.New("question not answered within the search budget")

// Searcher is the slice of the candidate store the Q&A agent queries.
type Searcher interface {
	RawQuery(ctx context.Context, filter, projection bson.M) ([]bson.M, error)
}

// QAAgent answers free-form questions about the evaluated candidates by
// iteratively querying the store and reasoning over the results.
type QAAgent struct {
	gen    llm.Generator
	store  Searcher
	system string
	logger logger.Logger
}

// NewQAAgent builds the agent around a schema sketch of the stored
// documents, so the model writes queries against real field names.
func NewQAAgent(gen llm.Generator, store Searcher, schemaSketchJSON string, log logger.Logger) *QAAgent {
	return &QAAgent{
		gen:    gen,
		store:  store,
		system: prompts.QASystem(schemaSketchJSON),
		logger: log.Named("qa"),
	}
}

// Answer runs the retrieval loop for one question and returns the updated
// history plus the final textual answer. Failed queries are fed back as
// tool errors so the model can rewrite them; the loop is capped at
// maxSearchIterations model turns.
func (a *QAAgent) Answer(ctx context.Context, history []llm.Message, question string) ([]llm.Message, string, error) {
	history = append(history, llm.UserMessage(question))
	tools := []*genai.FunctionDeclaration{SearchCandidatesTool()}

	for i := 0; i < maxSearchIterations; i++ {
		reply, err := a.gen.Converse(ctx, a.system, history, tools, llm.WithNode("database_qa"))
		if err != nil {
			return history, "", err
		}

		if reply.Call == nil {
			history = append(history, llm.Message{Role: llm.RoleModel, Text: reply.Text})
			return history, reply.Text, nil
		}

		history = append(history, llm.Message{Role: llm.RoleModel, Call: reply.Call})
		observation, qerr := a.runSearch(ctx, reply.Call.Args)
		if qerr != nil {
			a.logger.Warn("Candidate query failed", logger.Error(qerr))
			history = append(history, llm.ToolErrorMessage(reply.Call.Name, qerr.Error()))
			continue
		}
		history = append(history, llm.ToolResultMessage(reply.Call.Name, observation))
	}

	return history, "", ErrSearchBudget
}

func (a *QAAgent) runSearch(ctx context.Context, args map[string]any) (string, error) {
	rawQuery, _ := args["query"].(string)
	filter, err := parseJSONObject(rawQuery)
	if err != nil {
		return "", err
	}

	var projection bson.M
	if rawProj, ok := args["projection"].(string); ok && strings.TrimSpace(rawProj) != "" {
		projection, err = parseJSONObject(rawProj)
		if err != nil {
			return "", err
		}
	}

	docs, err := a.store.RawQuery(ctx, filter, projection)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "[]", nil
	}

	out, err := json.Marshal(docs)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseJSONObject decodes a JSON object, tolerating markdown code fences
// the model sometimes wraps queries in.
func parseJSONObject(s string) (bson.M, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return nil, errors.New("empty query document")
	}

	var out bson.M
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
