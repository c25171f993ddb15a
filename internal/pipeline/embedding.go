package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/wikisage/wikisage/internal/llm"
	"github.com/wikisage/wikisage/internal/vectordb"
)

// ContextDocuments caps how many retrieved documents feed the answer prompt.
const ContextDocuments = 5

// EmptyIndexReply is the normal reply when nothing has been indexed yet or
// nothing similar was found.
const EmptyIndexReply = "I don't have any indexed knowledge to draw on yet. Run /crawl-all to index the wiki first, or rephrase your question."

// answerPlaceholder stands in when the model reply carries no text block.
const answerPlaceholder = "Answer not available"

// RAGAnswer is the embedding pipeline's reply: the answer plus the sources
// it was grounded on, one "Title: URL" line each.
type RAGAnswer struct {
	Answer  string
	Sources string
}

// Embedding is the vector-retrieval pipeline: nearest-neighbor search over
// the indexed corpus, then a single grounded answer call.
type Embedding struct {
	store    vectordb.Store
	provider llm.Provider
	model    string
}

// NewEmbedding creates the embedding pipeline.
func NewEmbedding(store vectordb.Store, provider llm.Provider, model string) *Embedding {
	return &Embedding{store: store, provider: provider, model: model}
}

// Chat retrieves the documents nearest the question and asks the model to
// answer using only them. Zero retrieved documents is not an error.
func (e *Embedding) Chat(ctx context.Context, question string) (*RAGAnswer, error) {
	results, err := e.store.Search(ctx, question, ContextDocuments)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(results) == 0 {
		return &RAGAnswer{Answer: EmptyIndexReply}, nil
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Document.Content
	}

	resp, err := e.provider.Complete(ctx, llm.ChatRequest{
		Model:       e.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: answerPrompt(strings.Join(texts, "\n\n---\n\n"), question)}},
		MaxTokens:   300,
		Temperature: 0.5,
	})
	if err != nil {
		return nil, fmt.Errorf("answering: %w", err)
	}

	answer := resp.Content
	if answer == "" {
		answer = answerPlaceholder
	}

	return &RAGAnswer{
		Answer:  answer,
		Sources: formatSources(results),
	}, nil
}

// formatSources lists each retrieved document's origin, one line per page.
// Citations come only from retrieved documents; pages retrieved more than
// once are listed once.
func formatSources(results []vectordb.SearchResult) string {
	var lines []string
	seen := make(map[string]bool)
	for _, r := range results {
		md := r.Document.Metadata
		if seen[md.PageID] {
			continue
		}
		seen[md.PageID] = true
		lines = append(lines, fmt.Sprintf("%s: %s", md.Title, md.URL))
	}
	return strings.Join(lines, "\n")
}
