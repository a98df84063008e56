package gateway

import "context"

// Options tunes a single generation call.
type Options struct {
	// System is prepended as the system message when non-empty.
	System string
	// MaxTokens caps the response length; zero keeps the model default.
	MaxTokens int
	// Temperature overrides the model default when > 0.
	Temperature float32
}

// Generator is the single capability the counselor core consumes from its
// environment. Implementations may fail; every caller must degrade to its
// deterministic fallback strategy on error instead of propagating it to the
// student.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}
