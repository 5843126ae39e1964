package config

import "sync"

var (
	llmOnce   sync.Once
	llmConfig *LLMConfig
)

type LLMConfig struct {
	APIKey         string
	ModelName      string
	MaxTokens      int
	TopP           float64
	ThinkingBudget int
}

func GetLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		loadEnv()

		llmConfig = &LLMConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			ModelName:      getEnv("MODEL_NAME", "gemini-2.5-flash"),
			MaxTokens:      getEnvInt("MAX_TOKENS", 20000),
			TopP:           getEnvFloat("TOP_P", 0.0),
			ThinkingBudget: getEnvInt("THINKING_BUDGET", 5000),
		}
	})
	return llmConfig
}
