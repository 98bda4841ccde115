package llm

import (
	"os"
	"time"
)

// Environment variables consulted by NewFromEnv.
const (
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvModel   = "OPENAI_MODEL"
	EnvBaseURL = "OPENAI_BASE_URL"
)

// NewFromEnv creates a completion client from environment variables.
// OPENAI_BASE_URL allows pointing the client at any OpenAI-compatible
// server, including local ones.
func NewFromEnv(timeout time.Duration) (CompletionClient, error) {
	return NewOpenAIClient(OpenAIConfig{
		APIKey:  os.Getenv(EnvAPIKey),
		Model:   os.Getenv(EnvModel),
		BaseURL: os.Getenv(EnvBaseURL),
		Timeout: timeout,
	})
}
