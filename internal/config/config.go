package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/wikisage/wikisage/internal/confluence"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (WIKISAGE_*). Connection settings left
// empty fall back to their conventional CONFLUENCE_* variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("WIKISAGE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "WIKISAGE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Connection settings double as plain env vars for parity with the
	// conventional Confluence tooling setup.
	if cfg.ConfluenceBaseURL == "" {
		cfg.ConfluenceBaseURL = os.Getenv("CONFLUENCE_BASE_URL")
	}
	if cfg.ConfluencePageURL == "" {
		cfg.ConfluencePageURL = os.Getenv("CONFLUENCE_PAGE_URL")
	}
	if cfg.ConfluenceEmail == "" {
		cfg.ConfluenceEmail = os.Getenv("CONFLUENCE_EMAIL")
	}
	if cfg.ChatEndpoint == "" {
		cfg.ChatEndpoint = os.Getenv("CLAUDE_API_URL")
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[Mode]bool{
	ModeKeyword:   true,
	ModeEmbedding: true,
}

var validProviders = map[ProviderType]bool{
	ProviderAnthropic: true,
	ProviderOpenAI:    true,
}

// Validate checks that the configuration contains workable values.
func (c *Config) Validate() error {
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be keyword or embedding", c.Mode)
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be anthropic or openai", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Mode == ModeEmbedding && c.Collection == "" {
		return fmt.Errorf("collection is required in embedding mode")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.CrawlLimit <= 0 {
		return fmt.Errorf("crawl_limit must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.ConfluenceBaseURL == "" {
		return fmt.Errorf("confluence_base_url is required (or set CONFLUENCE_BASE_URL)")
	}
	return nil
}

// Confluence assembles the wiki client settings, pulling the API token from
// its environment variable. Tokens never live in the config file.
func (c *Config) Confluence() confluence.Config {
	return confluence.Config{
		BaseURL:  c.ConfluenceBaseURL,
		PageURL:  c.ConfluencePageURL,
		Email:    c.ConfluenceEmail,
		APIToken: os.Getenv("CONFLUENCE_API_TOKEN"),
	}
}

// APIKeyEnvVar returns the conventional environment variable holding the
// API key for the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
