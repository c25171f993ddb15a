package config

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// RunWizard interactively assembles a Config and saves it to .wikisage.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to wikisage! Let's connect your wiki.")
	fmt.Println()

	cfg := DefaultConfig()

	modePrompt := promptui.Select{
		Label: "Select retrieval mode",
		Items: []string{
			"keyword   — rewrite questions into CQL search queries",
			"embedding — semantic search over a local vector index",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Mode = []Mode{ModeKeyword, ModeEmbedding}[modeIdx]

	providerPrompt := promptui.Select{
		Label: "Select chat model provider",
		Items: []string{"anthropic", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	if cfg.Provider == ProviderOpenAI {
		cfg.Model = "gpt-4o-mini"
	}

	for _, q := range []struct {
		label    string
		dest     *string
		required bool
	}{
		{"Confluence REST API base URL (e.g. https://acme.atlassian.net/wiki/rest/api)", &cfg.ConfluenceBaseURL, true},
		{"Confluence page URL prefix (e.g. https://acme.atlassian.net/wiki)", &cfg.ConfluencePageURL, true},
		{"Confluence account email", &cfg.ConfluenceEmail, true},
		{"Default space key (empty for all spaces)", &cfg.SpaceKey, false},
	} {
		prompt := promptui.Prompt{
			Label: q.label,
			Validate: func(s string) error {
				if q.required && s == "" {
					return fmt.Errorf("value is required")
				}
				return nil
			},
		}
		value, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", q.label, err)
		}
		*q.dest = value
	}

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Printf("Saved %s. Set CONFLUENCE_API_TOKEN and %s before running `wikisage serve`.\n",
		DefaultConfigFile, APIKeyEnvVar(cfg.Provider))
	if cfg.Mode == ModeEmbedding {
		fmt.Println("Embedding mode also needs OPENAI_API_KEY for the embedding model.")
	}
	return cfg, nil
}
