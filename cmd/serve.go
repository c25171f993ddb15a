package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wikisage/wikisage/internal/config"
	"github.com/wikisage/wikisage/internal/crawler"
	"github.com/wikisage/wikisage/internal/db"
	"github.com/wikisage/wikisage/internal/history"
	"github.com/wikisage/wikisage/internal/indexer"
	"github.com/wikisage/wikisage/internal/pipeline"
	"github.com/wikisage/wikisage/internal/server"
)

var serveAllowAll bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wikisage HTTP server",
	Long: `Starts the HTTP server exposing POST /chat and GET /crawl-all in the
configured retrieval mode, plus /api/crawls and /api/chats for operation
history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		wiki, err := createConfluenceClient(cfg)
		if err != nil {
			return err
		}

		provider, err := createProviderFromConfig(cfg)
		if err != nil {
			return fmt.Errorf("creating chat provider: %w", err)
		}

		var kw *pipeline.Keyword
		var emb *pipeline.Embedding
		var index *indexer.Indexer

		switch cfg.Mode {
		case config.ModeKeyword:
			kw = pipeline.NewKeyword(wiki, provider, cfg.Model)
		case config.ModeEmbedding:
			store, err := createVectorStore(cfg)
			if err != nil {
				return fmt.Errorf("creating vector store: %w", err)
			}
			if err := store.Load(cmd.Context(), cfg.VectorDir()); err != nil {
				// The store may not exist before the first crawl.
				fmt.Fprintf(os.Stderr, "Warning: could not load vector store from %s: %v\n", cfg.VectorDir(), err)
				fmt.Fprintf(os.Stderr, "Answers will be empty. Run `wikisage crawl` or GET /crawl-all first.\n")
			}
			emb = pipeline.NewEmbedding(store, provider, cfg.Model)
			index = indexer.New(store)
		}

		database, err := db.Open(cfg.HistoryDBFile())
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()

		crawl := crawler.New(wiki, cfg.CrawlLimit, cfg.SnapshotFile())

		srv := server.New(server.Options{
			Port:     cfg.Port,
			Mode:     cfg.Mode,
			SpaceKey: cfg.SpaceKey,
			DataDir:  cfg.DataDir,
			AllowAll: serveAllowAll,
		}, kw, emb, crawl, index, history.NewStore(database))

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
			fmt.Fprintln(os.Stderr, "Shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins (development only)")
	rootCmd.AddCommand(serveCmd)
}
