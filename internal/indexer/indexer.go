package indexer

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/wikisage/wikisage/internal/crawler"
	"github.com/wikisage/wikisage/internal/vectordb"
)

// MinChars is the shortest document worth indexing. Near-empty pages
// (stubs, placeholders) add noise to retrieval without adding knowledge.
const MinChars = 200

// Result reports what one indexing run did.
type Result struct {
	Indexed int
	Skipped int
}

// Indexer loads cleaned documents into the vector store.
type Indexer struct {
	store vectordb.Store
}

// New creates an Indexer writing to the given store.
func New(store vectordb.Store) *Indexer {
	return &Indexer{store: store}
}

// Index embeds and stores the given documents, skipping any whose text is
// shorter than MinChars. Each stored record gets a fresh UUID; records are
// never updated in place. The store is persisted to dataDir afterwards
// unless dataDir is empty.
func (ix *Indexer) Index(ctx context.Context, docs []crawler.Document, dataDir string) (*Result, error) {
	res := &Result{}

	var records []vectordb.Document
	for _, doc := range docs {
		if utf8.RuneCountInString(doc.Text) < MinChars {
			res.Skipped++
			continue
		}
		records = append(records, vectordb.Document{
			ID:      uuid.New().String(),
			Content: doc.Text,
			Metadata: vectordb.Metadata{
				PageID:  doc.ID,
				Title:   doc.Title,
				URL:     doc.URL,
				Version: doc.Version,
			},
		})
	}

	if err := ix.store.Add(ctx, records); err != nil {
		return nil, fmt.Errorf("adding documents to vector store: %w", err)
	}
	res.Indexed = len(records)

	if dataDir != "" {
		if err := ix.store.Persist(ctx, dataDir); err != nil {
			return nil, fmt.Errorf("persisting vector store: %w", err)
		}
	}

	return res, nil
}
