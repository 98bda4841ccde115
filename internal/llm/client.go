package llm

import "context"

// CompletionClient is the language-model contract: one prompt in, one text
// completion out. Implementations map transport failures to
// types.ErrModelUnavailable and deadline expiry to types.ErrModelTimeout.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
