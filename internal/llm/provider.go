package llm

import "context"

// Provider is implemented by each chat model backend.
type Provider interface {
	// Complete sends one chat completion request and returns the reply.
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// Name returns the provider identifier.
	Name() string
}
