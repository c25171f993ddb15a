package vectordb

import (
	"context"
	"math"
	"testing"
)

// mockEmbedder produces deterministic vectors so tests never hit a network.
// Shared characters contribute to the same positions, so similar texts get
// similar vectors.
type mockEmbedder struct {
	dims int
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, m.dims)
		for j, ch := range text {
			vec[(int(ch)+j)%m.dims] += 1.0
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v * v)
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for j := range vec {
				vec[j] = float32(float64(vec[j]) / norm)
			}
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

func testDocs() []Document {
	return []Document{
		{
			ID:      "a",
			Content: "How to deploy the payments service to production",
			Metadata: Metadata{PageID: "101", Title: "Payments deploy guide", URL: "https://wiki/x/101", Version: 4},
		},
		{
			ID:      "b",
			Content: "Oncall rotation schedule and escalation policy",
			Metadata: Metadata{PageID: "102", Title: "Oncall", URL: "https://wiki/x/102", Version: 1},
		},
		{
			ID:      "c",
			Content: "Office kitchen cleaning duties for the quarter",
			Metadata: Metadata{PageID: "103", Title: "Kitchen duties", URL: "https://wiki/x/103", Version: 2},
		},
	}
}

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore("wiki_test", &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	return store
}

func TestAddAndSearch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Add(ctx, testDocs()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := store.Count(); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}

	results, err := store.Search(ctx, "deploy payments service production", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Document.ID != "a" {
		t.Errorf("top result = %q, want %q", results[0].Document.ID, "a")
	}
	if results[0].Document.Metadata.Title != "Payments deploy guide" {
		t.Errorf("metadata lost: %+v", results[0].Document.Metadata)
	}
	if results[0].Document.Metadata.Version != 4 {
		t.Errorf("version = %d, want 4", results[0].Document.Metadata.Version)
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store := newTestStore(t)
	results, err := store.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchLimitClampedToCollectionSize(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if err := store.Add(ctx, testDocs()[:1]); err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := store.Search(ctx, "deploy", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestPersistAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := newTestStore(t)
	if err := store.Add(ctx, testDocs()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Persist(ctx, dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	restored, err := NewChromemStore("wiki_test", &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	if err := restored.Load(ctx, dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := restored.Count(); got != 3 {
		t.Errorf("Count after load = %d, want 3", got)
	}
}
