package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wikisage/wikisage/internal/db"
)

const defaultListLimit = 50

// Store records crawl runs and chat requests for operational visibility.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordCrawl inserts one crawl run. A missing ID is generated.
func (s *Store) RecordCrawl(ctx context.Context, run CrawlRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, space_key, pages_crawled, pages_indexed, pages_skipped, duration_ms, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SpaceKey, run.PagesCrawled, run.PagesIndexed, run.PagesSkipped, run.DurationMS, run.Status, run.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting crawl run: %w", err)
	}
	return nil
}

// RecordChat inserts one chat request. A missing ID is generated.
func (s *Store) RecordChat(ctx context.Context, req ChatRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_requests (id, mode, question, duration_ms, status)
		VALUES (?, ?, ?, ?, ?)`,
		req.ID, req.Mode, req.Question, req.DurationMS, req.Status,
	)
	if err != nil {
		return fmt.Errorf("inserting chat request: %w", err)
	}
	return nil
}

// ListCrawls returns the most recent crawl runs, newest first.
func (s *Store) ListCrawls(ctx context.Context, limit int) ([]CrawlRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, space_key, pages_crawled, pages_indexed, pages_skipped, duration_ms, status, error
		FROM crawl_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying crawl runs: %w", err)
	}
	defer rows.Close()

	var runs []CrawlRun
	for rows.Next() {
		var r CrawlRun
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.SpaceKey, &r.PagesCrawled, &r.PagesIndexed, &r.PagesSkipped, &r.DurationMS, &r.Status, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning crawl run: %w", err)
		}
		r.StartedAt = parseSQLiteTime(startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListChats returns the most recent chat requests, newest first.
func (s *Store) ListChats(ctx context.Context, limit int) ([]ChatRequest, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, asked_at, mode, question, duration_ms, status
		FROM chat_requests ORDER BY asked_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chat requests: %w", err)
	}
	defer rows.Close()

	var reqs []ChatRequest
	for rows.Next() {
		var r ChatRequest
		var askedAt string
		if err := rows.Scan(&r.ID, &askedAt, &r.Mode, &r.Question, &r.DurationMS, &r.Status); err != nil {
			return nil, fmt.Errorf("scanning chat request: %w", err)
		}
		r.AskedAt = parseSQLiteTime(askedAt)
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// parseSQLiteTime handles the two datetime renderings SQLite produces.
func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
