package cleaner

import (
	"regexp"
	"strings"
)

// MaxChars caps cleaned text length to keep downstream prompts bounded.
const MaxChars = 8000

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// entityReplacer decodes the entities Confluence storage format actually emits.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&rsquo;", "'",
	"&ldquo;", `"`,
	"&rdquo;", `"`,
)

// Clean converts Confluence storage-format HTML into plain text: block
// elements become line breaks, all other tags are stripped, entities are
// decoded, whitespace is collapsed and the result is truncated to MaxChars.
// Malformed markup is never an error; worst case the output is empty.
func Clean(html string) string {
	text := html

	// Block-level closers become line breaks so words don't run together.
	for _, br := range []string{"<br>", "<br/>", "<br />"} {
		text = strings.ReplaceAll(text, br, "\n")
	}
	for _, closer := range []string{"</p>", "</div>", "</li>", "</tr>", "</h1>", "</h2>", "</h3>", "</h4>", "</h5>", "</h6>"} {
		text = strings.ReplaceAll(text, closer, "\n")
	}

	text = htmlTagRegex.ReplaceAllString(text, " ")
	text = entityReplacer.Replace(text)

	// Collapse runs of whitespace within lines, drop empty lines.
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return Truncate(strings.Join(cleaned, "\n"), MaxChars)
}

// Truncate cuts s to at most max characters without splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
