package history

import "time"

// Status values recorded per operation.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected" // chat only: request failed validation
	StatusFailed   = "failed"
)

// CrawlRun is one completed (or failed) crawl invocation.
type CrawlRun struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	SpaceKey     string    `json:"space_key"`
	PagesCrawled int       `json:"pages_crawled"`
	PagesIndexed int       `json:"pages_indexed"`
	PagesSkipped int       `json:"pages_skipped"`
	DurationMS   int64     `json:"duration_ms"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
}

// ChatRequest is one handled /chat call.
type ChatRequest struct {
	ID         string    `json:"id"`
	AskedAt    time.Time `json:"asked_at"`
	Mode       string    `json:"mode"`
	Question   string    `json:"question"`
	DurationMS int64     `json:"duration_ms"`
	Status     string    `json:"status"`
}
