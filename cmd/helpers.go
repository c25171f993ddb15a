package cmd

import (
	"fmt"
	"os"

	"github.com/wikisage/wikisage/internal/config"
	"github.com/wikisage/wikisage/internal/confluence"
	"github.com/wikisage/wikisage/internal/embeddings"
	"github.com/wikisage/wikisage/internal/llm"
	"github.com/wikisage/wikisage/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `wikisage init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createProviderFromConfig creates the chat model provider based on config.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.ChatEndpoint)
}

// createEmbedderFromConfig creates the embedder used in embedding mode.
// Embeddings always go through OpenAI, regardless of the chat provider.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for embeddings")
	}
	return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
}

// createVectorStore creates the chromem store for the configured collection.
func createVectorStore(cfg *config.Config) (vectordb.Store, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return vectordb.NewChromemStore(cfg.Collection, embedder)
}

// createConfluenceClient builds the wiki client from config, failing early
// when the API token is missing.
func createConfluenceClient(cfg *config.Config) (*confluence.Client, error) {
	cc := cfg.Confluence()
	if cc.APIToken == "" {
		return nil, fmt.Errorf("CONFLUENCE_API_TOKEN environment variable is not set")
	}
	return confluence.NewClient(cc), nil
}
