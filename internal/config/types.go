package config

// Mode selects which retrieval pipeline the server runs.
type Mode string

const (
	// ModeKeyword rewrites questions into CQL and summarizes search hits.
	ModeKeyword Mode = "keyword"
	// ModeEmbedding answers from nearest-neighbor retrieval over the index.
	ModeEmbedding Mode = "embedding"
)

// ProviderType identifies a chat model provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
)

// Config is the top-level wikisage configuration, corresponding to
// .wikisage.yml. Secrets (API tokens, model keys) are never stored here;
// they come from their conventional environment variables.
type Config struct {
	Mode           Mode         `yaml:"mode" koanf:"mode"`
	Provider       ProviderType `yaml:"provider" koanf:"provider"`
	Model          string       `yaml:"model" koanf:"model"`
	ChatEndpoint   string       `yaml:"chat_endpoint" koanf:"chat_endpoint"` // optional chat API URL override
	EmbeddingModel string       `yaml:"embedding_model" koanf:"embedding_model"`

	Collection   string `yaml:"collection" koanf:"collection"`
	DataDir      string `yaml:"data_dir" koanf:"data_dir"`
	SnapshotPath string `yaml:"snapshot_path" koanf:"snapshot_path"`

	Port       int    `yaml:"port" koanf:"port"`
	SpaceKey   string `yaml:"space_key" koanf:"space_key"`
	CrawlLimit int    `yaml:"crawl_limit" koanf:"crawl_limit"`

	ConfluenceBaseURL string `yaml:"confluence_base_url" koanf:"confluence_base_url"`
	ConfluencePageURL string `yaml:"confluence_page_url" koanf:"confluence_page_url"`
	ConfluenceEmail   string `yaml:"confluence_email" koanf:"confluence_email"`
}
