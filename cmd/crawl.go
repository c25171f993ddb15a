package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wikisage/wikisage/internal/config"
	"github.com/wikisage/wikisage/internal/crawler"
	"github.com/wikisage/wikisage/internal/db"
	"github.com/wikisage/wikisage/internal/history"
	"github.com/wikisage/wikisage/internal/indexer"
	"github.com/wikisage/wikisage/internal/progress"
)

var crawlSpaceKey string

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the wiki and refresh the local corpus",
	Long: `Fetches every page in the configured space (or all spaces), cleans the
page bodies, and overwrites the corpus snapshot. In embedding mode the
cleaned pages are also embedded into the vector index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		wiki, err := createConfluenceClient(cfg)
		if err != nil {
			return err
		}

		spaceKey := crawlSpaceKey
		if spaceKey == "" {
			spaceKey = cfg.SpaceKey
		}

		crawl := crawler.New(wiki, cfg.CrawlLimit, cfg.SnapshotFile())
		reporter := progress.NewReporter()
		reporter.Start()
		crawl.SetProgressFunc(reporter.Update)

		start := time.Now()
		docs, err := crawl.Run(cmd.Context(), spaceKey)
		run := history.CrawlRun{
			SpaceKey:     spaceKey,
			PagesCrawled: len(docs),
			Status:       history.StatusOK,
		}
		if err != nil {
			run.Status = history.StatusFailed
			run.Error = err.Error()
			run.DurationMS = time.Since(start).Milliseconds()
			recordCrawlRun(cfg, run)
			return fmt.Errorf("crawling wiki: %w", err)
		}
		reporter.Finish(len(docs))

		if cfg.Mode == config.ModeEmbedding {
			store, err := createVectorStore(cfg)
			if err != nil {
				return fmt.Errorf("creating vector store: %w", err)
			}
			res, err := indexer.New(store).Index(cmd.Context(), docs, cfg.VectorDir())
			if err != nil {
				run.Status = history.StatusFailed
				run.Error = err.Error()
				run.DurationMS = time.Since(start).Milliseconds()
				recordCrawlRun(cfg, run)
				return fmt.Errorf("indexing corpus: %w", err)
			}
			run.PagesIndexed = res.Indexed
			run.PagesSkipped = res.Skipped
			fmt.Printf("Indexed %d pages (%d skipped as too short)\n", res.Indexed, res.Skipped)
		}

		run.DurationMS = time.Since(start).Milliseconds()
		recordCrawlRun(cfg, run)

		fmt.Printf("Snapshot written to %s\n", cfg.SnapshotFile())
		return nil
	},
}

// recordCrawlRun writes the run to the history database. Failures here are
// reported but never fail the crawl itself.
func recordCrawlRun(cfg *config.Config, run history.CrawlRun) {
	database, err := db.Open(cfg.HistoryDBFile())
	if err != nil {
		fmt.Printf("Warning: could not open history database: %v\n", err)
		return
	}
	defer database.Close()

	if err := history.NewStore(database).RecordCrawl(context.Background(), run); err != nil {
		fmt.Printf("Warning: could not record crawl run: %v\n", err)
	}
}

func init() {
	crawlCmd.Flags().StringVar(&crawlSpaceKey, "space", "", "space key to crawl (default: config space_key, empty for all)")
	rootCmd.AddCommand(crawlCmd)
}
