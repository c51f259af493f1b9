package llm

import "context"

// Provider is the text-generation collaborator: prompt in, completion out.
// Implementations are treated as unreliable; callers surface failures as
// retryable and never retry internally.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Close() error
}
