package llm

import "time"

// UsageRecord accounts for one successful generation call.
type UsageRecord struct {
	Node         string    `json:"node_name" bson:"node_name"`
	SessionID    string    `json:"session_id" bson:"session_id"`
	Model        string    `json:"model" bson:"model"`
	PromptTokens int32     `json:"prompt_tokens" bson:"prompt_tokens"`
	OutputTokens int32     `json:"output_tokens" bson:"output_tokens"`
	TotalTokens  int32     `json:"total_tokens" bson:"total_tokens"`
	At           time.Time `json:"at" bson:"at"`
}

// UsageSink receives usage records. Emission is fire-and-forget: a failing
// sink must never fail the generation call that produced the record.
type UsageSink interface {
	Record(record UsageRecord) error
}
