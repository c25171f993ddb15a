package vectordb

// Document is one indexed piece of wiki content.
type Document struct {
	ID       string // generated per insertion, unique
	Content  string // cleaned page text
	Metadata Metadata
}

// Metadata ties an indexed document back to the wiki page it came from.
type Metadata struct {
	PageID  string
	Title   string
	URL     string
	Version int
}

// SearchResult pairs a document with its similarity to the query.
type SearchResult struct {
	Document   Document
	Similarity float32
}
