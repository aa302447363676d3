package domain

import "context"

// ContentProvider is the port for the generative content provider.
// Implementations own the model client, generation parameters and the
// call timeout; callers own retry and fallback policy.
type ContentProvider interface {
	// Complete sends a natural-language specification and returns the
	// provider's raw text response.
	Complete(ctx context.Context, prompt string) (string, error)
}
