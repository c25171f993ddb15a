package cleaner

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs become lines",
			html: "<p>First paragraph.</p><p>Second paragraph.</p>",
			want: "First paragraph.\nSecond paragraph.",
		},
		{
			name: "list items",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: "one\ntwo",
		},
		{
			name: "entities decoded",
			html: "<p>Tom &amp; Jerry &lt;3</p>",
			want: "Tom & Jerry <3",
		},
		{
			name: "whitespace collapsed",
			html: "<p>lots    of\t\tspace</p>",
			want: "lots of space",
		},
		{
			name: "links keep text only",
			html: `<p>See <a href="https://example.com/runbook">the runbook</a> for details.</p>`,
			want: "See the runbook for details.",
		},
		{
			name: "empty input",
			html: "",
			want: "",
		},
		{
			name: "only markup",
			html: "<div><span></span></div>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.html); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanMalformedMarkup(t *testing.T) {
	// None of these may panic, and all must respect the length cap.
	inputs := []string{
		"<p>unclosed paragraph",
		"<<<<>>>>",
		"<a href='broken>text",
		"text with < stray bracket",
		strings.Repeat("<b>x</b>", 10000),
		"<p>" + strings.Repeat("ä", MaxChars+500) + "</p>",
	}

	for _, in := range inputs {
		got := Clean(in)
		if n := utf8.RuneCountInString(got); n > MaxChars {
			t.Errorf("Clean produced %d chars, cap is %d", n, MaxChars)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("got %q, want %q", got, "hel")
	}
	// Multi-byte runes must not be split.
	got := Truncate("ééééé", 3)
	if got != "ééé" || !utf8.ValidString(got) {
		t.Errorf("rune-unsafe truncation: %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
