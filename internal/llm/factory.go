package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a chat provider for the given provider type and model.
// endpoint overrides the provider's default API URL when non-empty (only
// honored by the anthropic provider).
func NewProvider(providerType, model, endpoint string) (Provider, error) {
	switch providerType {
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		if endpoint == "" {
			endpoint = os.Getenv("CLAUDE_API_URL")
		}
		return NewAnthropicProvider(apiKey, model, endpoint), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
