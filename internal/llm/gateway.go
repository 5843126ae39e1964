package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hiresift/hiresift/config"
	"github.com/hiresift/hiresift/pkg/logger"
)

// Generator is the uniform interface to the text/vision generation
// capability. It never retries: retry policy belongs to the caller.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error)
	GenerateVision(ctx context.Context, prompt string, imagePNG []byte, opts ...Option) (string, error)
	GenerateObject(ctx context.Context, prompt string, schema *genai.Schema, out any, opts ...Option) error
	Converse(ctx context.Context, system string, history []Message, tools []*genai.FunctionDeclaration, opts ...Option) (*Reply, error)
}

// Reply is the tagged result of a tool-enabled turn: either plain text or
// a structured tool invocation.
type Reply struct {
	Text string
	Call *ToolCall
}

type options struct {
	temperature    *float32
	topP           *float32
	maxTokens      int32
	thinkingBudget *int32
	node           string
}

// Option adjusts a single generation call.
type Option func(*options)

// WithTemperature overrides the default temperature (0).
func WithTemperature(t float32) Option {
	return func(o *options) { o.temperature = &t }
}

// WithMaxTokens overrides the default output token cap.
func WithMaxTokens(n int32) Option {
	return func(o *options) { o.maxTokens = n }
}

// WithTopP overrides the default nucleus sampling cutoff.
func WithTopP(p float32) Option {
	return func(o *options) { o.topP = &p }
}

// WithThinkingBudget overrides the default thinking token budget.
func WithThinkingBudget(n int32) Option {
	return func(o *options) { o.thinkingBudget = &n }
}

// WithNode tags the usage record with the calling node's identity.
func WithNode(name string) Option {
	return func(o *options) { o.node = name }
}

// Gateway implements Generator on the Gemini API.
type Gateway struct {
	client  *genai.Client
	model   string
	session string
	sink    UsageSink
	logger  logger.Logger

	defaultMaxTokens      int32
	defaultTopP           float64
	defaultThinkingBudget int32
}

// NewGateway creates a Gateway from the LLM config. sink may be nil.
func NewGateway(ctx context.Context, cfg *config.LLMConfig, sink UsageSink, log logger.Logger) (*Gateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gateway{
		client:                client,
		model:                 cfg.ModelName,
		sink:                  sink,
		logger:                log.Named("llm"),
		defaultMaxTokens:      int32(cfg.MaxTokens),
		defaultTopP:           cfg.TopP,
		defaultThinkingBudget: int32(cfg.ThinkingBudget),
	}, nil
}

// ForSession returns a copy of the gateway that tags usage records with
// the given session id.
func (g *Gateway) ForSession(sessionID string) *Gateway {
	clone := *g
	clone.session = sessionID
	return &clone
}

func (g *Gateway) buildConfig(o *options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if o.temperature != nil {
		cfg.Temperature = o.temperature
	} else {
		cfg.Temperature = genai.Ptr[float32](0)
	}
	if o.topP != nil {
		cfg.TopP = o.topP
	} else if g.defaultTopP > 0 {
		cfg.TopP = genai.Ptr(float32(g.defaultTopP))
	}
	if o.maxTokens > 0 {
		cfg.MaxOutputTokens = o.maxTokens
	} else {
		cfg.MaxOutputTokens = g.defaultMaxTokens
	}
	if o.thinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: o.thinkingBudget}
	} else if g.defaultThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(g.defaultThinkingBudget)}
	}

	return cfg
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GenerateText sends a single-turn prompt and returns the textual answer.
func (g *Gateway) GenerateText(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := applyOptions(opts)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.buildConfig(o))
	if err != nil {
		return "", &GenerationError{Op: "text", Err: err}
	}
	g.emitUsage(o.node, resp.UsageMetadata)

	text := resp.Text()
	if text == "" {
		return "", &GenerationError{Op: "text", Err: errors.New("empty response")}
	}
	return text, nil
}

// GenerateVision sends a prompt plus one PNG page image.
func (g *Gateway) GenerateVision(ctx context.Context, prompt string, imagePNG []byte, opts ...Option) (string, error) {
	o := applyOptions(opts)

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: imagePNG}},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.buildConfig(o))
	if err != nil {
		return "", &GenerationError{Op: "vision", Err: err}
	}
	g.emitUsage(o.node, resp.UsageMetadata)

	return resp.Text(), nil
}

// GenerateObject constrains the response to the given schema and decodes
// it into out.
func (g *Gateway) GenerateObject(ctx context.Context, prompt string, schema *genai.Schema, out any, opts ...Option) error {
	o := applyOptions(opts)

	cfg := g.buildConfig(o)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = schema

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return &GenerationError{Op: "object", Err: err}
	}
	g.emitUsage(o.node, resp.UsageMetadata)

	raw := resp.Text()
	if raw == "" {
		return &SchemaValidationError{Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &SchemaValidationError{Err: err}
	}
	return nil
}

// Converse runs one tool-enabled turn over an accumulated history and
// returns either plain text or the first tool invocation.
func (g *Gateway) Converse(ctx context.Context, system string, history []Message, tools []*genai.FunctionDeclaration, opts ...Option) (*Reply, error) {
	o := applyOptions(opts)

	cfg := g.buildConfig(o)
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if len(tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: tools}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(history), cfg)
	if err != nil {
		return nil, &GenerationError{Op: "converse", Err: err}
	}
	g.emitUsage(o.node, resp.UsageMetadata)

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		return &Reply{Call: &ToolCall{Name: calls[0].Name, Args: calls[0].Args}}, nil
	}
	return &Reply{Text: resp.Text()}, nil
}

// emitUsage records token usage in a detached goroutine. Failures are
// swallowed: usage accounting must never fail the calling operation.
func (g *Gateway) emitUsage(node string, usage *genai.GenerateContentResponseUsageMetadata) {
	if g.sink == nil || usage == nil {
		return
	}

	record := UsageRecord{
		Node:         node,
		SessionID:    g.session,
		Model:        g.model,
		PromptTokens: usage.PromptTokenCount,
		OutputTokens: usage.CandidatesTokenCount,
		TotalTokens:  usage.TotalTokenCount,
		At:           time.Now().UTC(),
	}

	go func() {
		if err := g.sink.Record(record); err != nil {
			g.logger.Warn("usage record dropped",
				logger.String("node", node),
				logger.Error(err),
			)
		}
	}()
}
