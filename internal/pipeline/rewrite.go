package pipeline

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/wikisage/wikisage/internal/llm"
)

var (
	preambleRegex  = regexp.MustCompile(`(?i)final cql query:\s*`)
	codeFenceRegex = regexp.MustCompile("```[a-z]*\n?")
	newlineRegex   = regexp.MustCompile(`[\r\n]+`)
)

// smartQuoteReplacer normalizes typographic quotes the model sometimes emits.
var smartQuoteReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"`", "",
)

// Rewriter turns a free-text question into a CQL search expression via the
// chat model.
type Rewriter struct {
	provider llm.Provider
	model    string
}

// NewRewriter creates a Rewriter using the given provider and model.
func NewRewriter(provider llm.Provider, model string) *Rewriter {
	return &Rewriter{provider: provider, model: model}
}

// Rewrite asks the model for a CQL query matching the question and sanitizes
// the raw output. A transport failure degrades to returning the question
// unchanged; validation of the result is the caller's job either way.
func (r *Rewriter) Rewrite(ctx context.Context, question string) string {
	resp, err := r.provider.Complete(ctx, llm.ChatRequest{
		Model:       r.model,
		System:      rewriteSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: "User query: " + question}},
		MaxTokens:   100,
		Temperature: 0.5,
	})
	if err != nil {
		log.Printf("pipeline: query rewrite failed, falling back to raw question: %v", err)
		return question
	}
	return SanitizeCQL(resp.Content)
}

// SanitizeCQL strips preamble text, code fences and typographic quotes from
// raw model output and flattens it to a single trimmed line.
func SanitizeCQL(raw string) string {
	s := preambleRegex.ReplaceAllString(raw, "")
	s = codeFenceRegex.ReplaceAllString(s, "")
	s = newlineRegex.ReplaceAllString(s, " ")
	s = smartQuoteReplacer.Replace(s)
	return strings.TrimSpace(s)
}

// ValidateCQL checks the minimal well-formedness the search endpoint needs:
// a text-containment predicate and the page type filter.
func ValidateCQL(cql string) error {
	if cql == "" {
		return &ValidationError{Msg: "could not generate a search query from the question"}
	}
	if !strings.Contains(cql, "text ~") || !strings.Contains(cql, "type = page") {
		return &ValidationError{Msg: "generated query is malformed or incomplete"}
	}
	return nil
}
