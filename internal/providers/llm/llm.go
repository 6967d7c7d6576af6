package llm

import "context"

// Provider is the language-model boundary. Each call is a single best-effort
// request: no retry, no internal timeout beyond the caller's context.
type Provider interface {
	// Generate returns the model's full text reply for one prompt.
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
	// Stream returns the reply as incremental text chunks.
	Stream(ctx context.Context, prompt string, temperature float32) (chunks <-chan string, errs <-chan error)
	Close() error
}
