package agent

import (
	"context"

	"google.golang.org/genai"

	"github.com/hiresift/hiresift/internal/llm"
	"github.com/hiresift/hiresift/pkg/logger"
)

// maxCorrections bounds how many times a rejected tool submission is fed
// back to the model inside one user turn before the turn fails.
const maxCorrections = 3

// Turn is the outcome of one interview turn: either a follow-up question
// for the user, or the validated submission.
type Turn[T any] struct {
	Question string
	Result   *T
}

// Interview drives a tool-terminated conversation: the model keeps asking
// the user questions until it has enough to call its single submit tool,
// and the validated payload ends the interview. The caller owns the
// message history, so an interview survives checkpointing between turns.
type Interview[T any] struct {
	gen      llm.Generator
	system   string
	tool     *genai.FunctionDeclaration
	validate func(*T) error
	node     string
	logger   logger.Logger
}

func NewInterview[T any](gen llm.Generator, system string, tool *genai.FunctionDeclaration, validate func(*T) error, node string, log logger.Logger) *Interview[T] {
	return &Interview[T]{
		gen:      gen,
		system:   system,
		tool:     tool,
		validate: validate,
		node:     node,
		logger:   log.Named("interview"),
	}
}

// Next runs one turn. userText may be empty on the opening turn. The
// returned history includes everything appended during the turn and must
// replace the caller's copy.
//
// When a submission fails decoding or validation, the rejection is fed
// back as a tool error and the model re-asked, up to maxCorrections
// times. Exhaustion returns a ValidationError carrying the last reason.
func (iv *Interview[T]) Next(ctx context.Context, history []llm.Message, userText string) ([]llm.Message, *Turn[T], error) {
	if userText != "" {
		history = append(history, llm.UserMessage(userText))
	}

	var lastErr error
	for attempt := 0; attempt < maxCorrections; attempt++ {
		reply, err := iv.gen.Converse(ctx, iv.system, history, []*genai.FunctionDeclaration{iv.tool}, llm.WithNode(iv.node))
		if err != nil {
			return history, nil, err
		}

		if reply.Call == nil {
			history = append(history, llm.Message{Role: llm.RoleModel, Text: reply.Text})
			return history, &Turn[T]{Question: reply.Text}, nil
		}

		history = append(history, llm.Message{Role: llm.RoleModel, Call: reply.Call})

		result, decodeErr := decodeArgs[T](reply.Call.Args)
		verr := decodeErr
		if verr == nil && iv.validate != nil {
			verr = iv.validate(result)
		}
		if verr == nil {
			history = append(history, llm.ToolResultMessage(reply.Call.Name, "accepted"))
			iv.logger.Info("Interview submission accepted", logger.String("tool", reply.Call.Name))
			return history, &Turn[T]{Result: result}, nil
		}

		lastErr = verr
		iv.logger.Warn("Interview submission rejected",
			logger.String("tool", reply.Call.Name),
			logger.Int("attempt", attempt+1),
			logger.Error(verr),
		)
		history = append(history, llm.ToolErrorMessage(reply.Call.Name, verr.Error()))
	}

	return history, nil, &ValidationError{Tool: iv.tool.Name, Err: lastErr}
}
