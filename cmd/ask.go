package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wikisage/wikisage/internal/config"
	"github.com/wikisage/wikisage/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the wiki a question from the command line",
	Long:  `Runs one question through the configured retrieval pipeline without starting the server.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		question := strings.Join(args, " ")

		provider, err := createProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating chat provider: %w", err)
		}

		if cfg.Mode == config.ModeEmbedding {
			store, err := createVectorStore(cfg)
			if err != nil {
				return fmt.Errorf("creating vector store: %w", err)
			}
			if err := store.Load(cmd.Context(), cfg.VectorDir()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load vector store: %v\n", err)
			}

			ans, err := pipeline.NewEmbedding(store, provider, cfg.Model).Chat(cmd.Context(), question)
			if err != nil {
				return err
			}
			fmt.Println(ans.Answer)
			if ans.Sources != "" {
				fmt.Println("\nSources:")
				fmt.Println(ans.Sources)
			}
			return nil
		}

		wiki, err := createConfluenceClient(cfg)
		if err != nil {
			return err
		}
		reply, err := pipeline.NewKeyword(wiki, provider, cfg.Model).Chat(cmd.Context(), question)
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
