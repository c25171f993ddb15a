package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/wikisage/wikisage/internal/embeddings"
)

const exportFile = "chromem.gob.gz"

// ChromemStore implements Store using chromem-go with an in-process
// collection, exported to disk via Persist/Load.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore opens (or creates) the named collection backed by the
// given embedder.
func NewChromemStore(name string, embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(name, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("creating collection %q: %w", name, err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		name:       name,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: metadataToMap(doc.Metadata),
		}
	}

	// Concurrency 1: documents are embedded one at a time to bound burst
	// load on the embedding API.
	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	// chromem-go rejects nResults larger than the collection.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := s.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, exportFile), true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, exportFile), ""); err != nil {
		return fmt.Errorf("importing vector data: %w", err)
	}

	// Re-acquire the collection reference after import.
	col := s.db.GetCollection(s.name, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", s.name)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"page_id": m.PageID,
		"title":   m.Title,
		"url":     m.URL,
		"version": strconv.Itoa(m.Version),
	}
}

func mapToMetadata(m map[string]string) Metadata {
	version, _ := strconv.Atoi(m["version"])
	return Metadata{
		PageID:  m["page_id"],
		Title:   m["title"],
		URL:     m["url"],
		Version: version,
	}
}
