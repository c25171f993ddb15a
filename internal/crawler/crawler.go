package crawler

import (
	"context"
	"fmt"

	"github.com/wikisage/wikisage/internal/cleaner"
	"github.com/wikisage/wikisage/internal/confluence"
)

// Document is one crawled, cleaned wiki page. This is the shape persisted
// in the snapshot file and handed to the indexer.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Version int    `json:"version"`
	Text    string `json:"text"`
}

// PageSource is the slice of the Confluence client the crawler needs.
type PageSource interface {
	ListPages(ctx context.Context, spaceKey string, start, limit int) ([]confluence.Page, error)
	PageLink(webui string) string
}

// ProgressFunc is called after each fetched batch with the running page count.
type ProgressFunc func(fetched int)

// Crawler walks a wiki space page by page and produces the cleaned corpus.
type Crawler struct {
	source       PageSource
	limit        int
	snapshotPath string
	onProgress   ProgressFunc
}

// New creates a Crawler. limit is the pagination batch size; snapshotPath
// may be empty to skip writing the snapshot artifact.
func New(source PageSource, limit int, snapshotPath string) *Crawler {
	if limit <= 0 {
		limit = 50
	}
	return &Crawler{
		source:       source,
		limit:        limit,
		snapshotPath: snapshotPath,
	}
}

// SetProgressFunc sets the progress callback.
func (c *Crawler) SetProgressFunc(fn ProgressFunc) {
	c.onProgress = fn
}

// Run paginates through all pages in the given space (or all spaces when
// spaceKey is empty), cleans each page, and overwrites the snapshot file
// with the full corpus. A batch fetch failure aborts the crawl; this is a
// batch administrative operation, partial corpora are not kept.
func (c *Crawler) Run(ctx context.Context, spaceKey string) ([]Document, error) {
	var pages []confluence.Page
	start := 0

	// Offset/limit pagination: a batch shorter than the limit signals the
	// last batch.
	for {
		batch, err := c.source.ListPages(ctx, spaceKey, start, c.limit)
		if err != nil {
			return nil, fmt.Errorf("crawl aborted: %w", err)
		}
		pages = append(pages, batch...)

		if c.onProgress != nil {
			c.onProgress(len(pages))
		}

		if len(batch) < c.limit {
			break
		}
		start += c.limit
	}

	docs := make([]Document, 0, len(pages))
	for _, page := range pages {
		docs = append(docs, Document{
			ID:      page.ID,
			Title:   page.Title,
			URL:     c.source.PageLink(page.WebUI),
			Version: page.Version,
			Text:    cleaner.Clean(page.Body),
		})
	}

	if c.snapshotPath != "" {
		if err := WriteSnapshot(c.snapshotPath, docs); err != nil {
			return nil, fmt.Errorf("writing snapshot: %w", err)
		}
	}

	return docs, nil
}
