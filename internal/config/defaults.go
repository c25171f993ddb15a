package config

import "path/filepath"

// DefaultConfigFile is the config filename looked up in the working directory.
const DefaultConfigFile = ".wikisage.yml"

// DefaultConfig returns a Config with sensible defaults. The keyword mode
// and haiku-class model mirror the cheapest workable setup.
func DefaultConfig() *Config {
	return &Config{
		Mode:           ModeKeyword,
		Provider:       ProviderAnthropic,
		Model:          "claude-3-haiku-20240307",
		EmbeddingModel: "text-embedding-3-small",
		Collection:     "wiki_pages",
		DataDir:        "data",
		Port:           3000,
		CrawlLimit:     50,
	}
}

// SnapshotFile returns the corpus snapshot path, defaulting to
// <data_dir>/corpus.json when unset.
func (c *Config) SnapshotFile() string {
	if c.SnapshotPath != "" {
		return c.SnapshotPath
	}
	return filepath.Join(c.DataDir, "corpus.json")
}

// VectorDir returns the directory holding the persisted vector store.
func (c *Config) VectorDir() string {
	return filepath.Join(c.DataDir, "vectordb")
}

// HistoryDBFile returns the SQLite path for operation history.
func (c *Config) HistoryDBFile() string {
	return filepath.Join(c.DataDir, "wikisage.db")
}
