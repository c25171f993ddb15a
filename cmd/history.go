package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wikisage/wikisage/internal/db"
	"github.com/wikisage/wikisage/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent crawl runs and chat requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.HistoryDBFile())
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()

		store := history.NewStore(database)

		crawls, err := store.ListCrawls(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		chats, err := store.ListChats(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CRAWLS")
		fmt.Fprintln(w, "STARTED\tSPACE\tCRAWLED\tINDEXED\tSKIPPED\tSTATUS")
		for _, r := range crawls {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
				r.StartedAt.Format("2006-01-02 15:04"), r.SpaceKey, r.PagesCrawled, r.PagesIndexed, r.PagesSkipped, r.Status)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "CHATS")
		fmt.Fprintln(w, "ASKED\tMODE\tSTATUS\tQUESTION")
		for _, r := range chats {
			q := r.Question
			if len(q) > 60 {
				q = q[:57] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.AskedAt.Format("2006-01-02 15:04"), r.Mode, r.Status, q)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max entries per section")
	rootCmd.AddCommand(historyCmd)
}
