package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wikisage/wikisage/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndListCrawls(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	if err := store.RecordCrawl(ctx, CrawlRun{
		SpaceKey:     "ENG",
		PagesCrawled: 60,
		PagesIndexed: 55,
		PagesSkipped: 5,
		DurationMS:   1234,
		Status:       StatusOK,
	}); err != nil {
		t.Fatalf("RecordCrawl: %v", err)
	}
	if err := store.RecordCrawl(ctx, CrawlRun{
		SpaceKey: "OPS",
		Status:   StatusFailed,
		Error:    "confluence unreachable",
	}); err != nil {
		t.Fatalf("RecordCrawl: %v", err)
	}

	runs, err := store.ListCrawls(ctx, 10)
	if err != nil {
		t.Fatalf("ListCrawls: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for _, r := range runs {
		if r.ID == "" {
			t.Error("missing generated ID")
		}
	}
}

func TestRecordAndListChats(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)

	if err := store.RecordChat(ctx, ChatRequest{
		Mode:       "keyword",
		Question:   "how do deploys work?",
		DurationMS: 321,
		Status:     StatusOK,
	}); err != nil {
		t.Fatalf("RecordChat: %v", err)
	}

	reqs, err := store.ListChats(ctx, 0)
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	if reqs[0].Question != "how do deploys work?" || reqs[0].Mode != "keyword" {
		t.Errorf("unexpected row: %+v", reqs[0])
	}
}

func TestListCrawlsRoute(t *testing.T) {
	store := setupStore(t)
	if err := store.RecordCrawl(context.Background(), CrawlRun{SpaceKey: "ENG", Status: StatusOK}); err != nil {
		t.Fatalf("RecordCrawl: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/crawls?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var runs []CrawlRun
	if err := json.Unmarshal(w.Body.Bytes(), &runs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(runs) != 1 || runs[0].SpaceKey != "ENG" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestListChatsRouteEmpty(t *testing.T) {
	store := setupStore(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/chats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}
