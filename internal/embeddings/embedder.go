package embeddings

import "context"

// Embedder turns text into fixed-dimension vectors. It is used at index
// time (per document) and at query time (per question).
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector width produced by this embedder.
	Dimensions() int

	// Name returns the embedding model identifier.
	Name() string
}
