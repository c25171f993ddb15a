package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wikisage",
	Short: "Question answering over your Confluence wiki",
	Long: `Wikisage crawls a Confluence wiki and answers natural-language
questions about it through a chat model. It runs in one of two retrieval
modes: keyword (questions are rewritten into CQL search queries) or
embedding (semantic search over a locally indexed corpus).`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".wikisage.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
