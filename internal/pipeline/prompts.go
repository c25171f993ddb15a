package pipeline

import (
	"fmt"
	"strings"
)

// rewriteSystemPrompt constrains the model to emit a bare CQL string.
const rewriteSystemPrompt = `You are an expert assistant helping users search their company Confluence knowledge base. Given a user question, return only a valid Confluence CQL query that:

- searches for relevant terms using text ~ "..."
- filters for type = page

Do not include ORDER BY clauses or additional filters. Only return the raw CQL string.

Example: text ~ "deployment architecture" AND type = page`

// summarizePrompt asks for a ~100 word summary of one page, citing its URL.
func summarizePrompt(text, pageURL string) string {
	return fmt.Sprintf("Here is a document:\n\n%s\n\nSummarize it in 100 words. Include any relevant files or image links. Provide a link to the original page: %s", text, pageURL)
}

// answerPrompt asks for a grounded answer built only from the retrieved context.
func answerPrompt(contextText, question string) string {
	var b strings.Builder
	b.WriteString("Use the following documents from the knowledge base to answer the question.\n\n")
	b.WriteString(contextText)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer in 10-100 words using only the documents above. If they do not contain the answer, say so.")
	return b.String()
}
