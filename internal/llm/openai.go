package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dshills/codegraph/pkg/types"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout bounds a single completion call. The model call is the
	// dominant latency source in the query path and must never hang.
	DefaultTimeout = 60 * time.Second
)

// OpenAIConfig configures the OpenAI-compatible completion client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // override for OpenAI-compatible local servers
	Timeout time.Duration
}

// OpenAIClient implements CompletionClient against the OpenAI chat API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a completion client. Query generation needs
// deterministic output, so completions run at temperature zero.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key not set")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("initializing completion client", "model", cfg.Model, "timeout", cfg.Timeout)
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Complete sends one prompt and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", mapModelError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", types.ErrModelUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// mapModelError classifies a completion failure. Caller cancellation passes
// through untouched so an abandoned question does not read as an outage.
func mapModelError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", types.ErrModelTimeout, err)
	case errors.Is(ctx.Err(), context.Canceled), errors.Is(err, context.Canceled):
		return context.Canceled
	default:
		return fmt.Errorf("%w: %v", types.ErrModelUnavailable, err)
	}
}
