package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/wikisage/wikisage/internal/cleaner"
	"github.com/wikisage/wikisage/internal/confluence"
	"github.com/wikisage/wikisage/internal/llm"
)

// MaxSearchResults caps how many search hits are fetched and summarized per
// question, bounding downstream model cost and latency.
const MaxSearchResults = 3

// NoMatchesReply is the normal (non-error) reply when the search finds nothing.
const NoMatchesReply = "No documents found matching your query."

// summaryPlaceholder stands in when the model reply carries no text block.
const summaryPlaceholder = "Summary not available"

// Wiki is the slice of the Confluence client the keyword pipeline needs.
type Wiki interface {
	Search(ctx context.Context, cql string) ([]confluence.Page, error)
	GetPage(ctx context.Context, id string) (*confluence.Page, error)
	PageLink(webui string) string
}

// Keyword is the CQL-based retrieval pipeline: rewrite the question into a
// search expression, search the wiki, then summarize the top hits one by one.
type Keyword struct {
	wiki     Wiki
	provider llm.Provider
	rewriter *Rewriter
	model    string
}

// NewKeyword creates the keyword pipeline.
func NewKeyword(wiki Wiki, provider llm.Provider, model string) *Keyword {
	return &Keyword{
		wiki:     wiki,
		provider: provider,
		rewriter: NewRewriter(provider, model),
		model:    model,
	}
}

// Chat answers a question by searching the wiki and joining per-page
// summaries. A failed page fetch or summary is skipped; the request fails
// only when a query cannot be produced, the search itself fails, or every
// candidate page fails.
func (k *Keyword) Chat(ctx context.Context, question string) (string, error) {
	cql := k.rewriter.Rewrite(ctx, question)
	if err := ValidateCQL(cql); err != nil {
		return "", err
	}
	log.Printf("pipeline: searching with CQL: %s", cql)

	pages, err := k.wiki.Search(ctx, cql)
	if err != nil {
		return "", fmt.Errorf("searching wiki: %w", err)
	}
	if len(pages) == 0 {
		return NoMatchesReply, nil
	}

	if len(pages) > MaxSearchResults {
		pages = pages[:MaxSearchResults]
	}

	var summaries []string
	var failed int
	for _, page := range pages {
		summary, err := k.summarizePage(ctx, page)
		if err != nil {
			// Per-page isolation: keep the request alive on partial failure.
			log.Printf("pipeline: skipping page %s (%s): %v", page.ID, page.Title, err)
			failed++
			continue
		}
		summaries = append(summaries, fmt.Sprintf("Summary of %q:\n%s", page.Title, summary))
	}

	if len(summaries) == 0 && failed > 0 {
		return "", fmt.Errorf("all %d candidate pages failed", failed)
	}

	return strings.Join(summaries, "\n\n"), nil
}

// summarizePage fetches one page's full body and asks the model for a short
// summary citing the page link. Calls are sequential by design.
func (k *Keyword) summarizePage(ctx context.Context, page confluence.Page) (string, error) {
	full, err := k.wiki.GetPage(ctx, page.ID)
	if err != nil {
		return "", fmt.Errorf("fetching body: %w", err)
	}

	text := cleaner.Clean(full.Body)
	pageURL := k.wiki.PageLink(full.WebUI)

	resp, err := k.provider.Complete(ctx, llm.ChatRequest{
		Model:       k.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: summarizePrompt(text, pageURL)}},
		MaxTokens:   300,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}

	if resp.Content == "" {
		return summaryPlaceholder, nil
	}
	return resp.Content, nil
}
