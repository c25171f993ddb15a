package indexer

import (
	"context"
	"strings"
	"testing"

	"github.com/wikisage/wikisage/internal/crawler"
	"github.com/wikisage/wikisage/internal/vectordb"
)

// recordingStore captures added documents without embedding anything.
type recordingStore struct {
	added     []vectordb.Document
	persisted string
}

func (s *recordingStore) Add(_ context.Context, docs []vectordb.Document) error {
	s.added = append(s.added, docs...)
	return nil
}

func (s *recordingStore) Search(context.Context, string, int) ([]vectordb.SearchResult, error) {
	return nil, nil
}

func (s *recordingStore) Persist(_ context.Context, dir string) error {
	s.persisted = dir
	return nil
}

func (s *recordingStore) Load(context.Context, string) error { return nil }
func (s *recordingStore) Count() int                         { return len(s.added) }

func TestIndexSkipsShortDocuments(t *testing.T) {
	store := &recordingStore{}
	ix := New(store)

	docs := []crawler.Document{
		{ID: "1", Title: "Stub", Text: "Too short to matter."},
		{ID: "2", Title: "Real", Text: strings.Repeat("useful content ", 40)},
		{ID: "3", Title: "Empty", Text: ""},
	}

	res, err := ix.Index(context.Background(), docs, "")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	if res.Indexed != 1 {
		t.Errorf("Indexed = %d, want 1", res.Indexed)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	if len(store.added) != 1 {
		t.Fatalf("store holds %d docs, want 1", len(store.added))
	}

	rec := store.added[0]
	if rec.Metadata.PageID != "2" || rec.Metadata.Title != "Real" {
		t.Errorf("wrong document stored: %+v", rec.Metadata)
	}
	if rec.ID == "" || rec.ID == "2" {
		t.Errorf("record ID should be generated, got %q", rec.ID)
	}
}

func TestIndexExactBoundary(t *testing.T) {
	store := &recordingStore{}
	ix := New(store)

	atBoundary := strings.Repeat("a", MinChars)
	below := strings.Repeat("a", MinChars-1)

	res, err := ix.Index(context.Background(), []crawler.Document{
		{ID: "ok", Text: atBoundary},
		{ID: "short", Text: below},
	}, "")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if res.Indexed != 1 || res.Skipped != 1 {
		t.Errorf("got indexed=%d skipped=%d, want 1/1", res.Indexed, res.Skipped)
	}
}

func TestIndexPersistsToDataDir(t *testing.T) {
	store := &recordingStore{}
	ix := New(store)

	dir := t.TempDir()
	_, err := ix.Index(context.Background(), []crawler.Document{
		{ID: "1", Text: strings.Repeat("x", MinChars)},
	}, dir)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if store.persisted != dir {
		t.Errorf("persisted to %q, want %q", store.persisted, dir)
	}
}

func TestIndexGeneratesUniqueIDs(t *testing.T) {
	store := &recordingStore{}
	ix := New(store)

	text := strings.Repeat("content ", 50)
	docs := []crawler.Document{
		{ID: "1", Text: text},
		{ID: "2", Text: text},
	}
	if _, err := ix.Index(context.Background(), docs, ""); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(store.added) != 2 {
		t.Fatalf("stored %d", len(store.added))
	}
	if store.added[0].ID == store.added[1].ID {
		t.Error("record IDs collide")
	}
}
