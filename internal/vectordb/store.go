package vectordb

import "context"

// Store holds embedded documents and answers nearest-neighbor queries.
// Records are append-only; nothing in the system updates or deletes them.
type Store interface {
	// Add appends documents to the store, embedding their content.
	Add(ctx context.Context, docs []Document) error

	// Search returns up to limit documents ranked by similarity to the query text.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Persist saves the store's data under the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the number of stored documents.
	Count() int
}
