package crawler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wikisage/wikisage/internal/confluence"
)

// fakeSource serves a fixed number of pages through offset/limit pagination
// and records every list call.
type fakeSource struct {
	total    int
	calls    []int // start offsets, in order
	failFrom int   // fail when start >= failFrom, if > 0
}

func (f *fakeSource) ListPages(_ context.Context, _ string, start, limit int) ([]confluence.Page, error) {
	f.calls = append(f.calls, start)
	if f.failFrom > 0 && start >= f.failFrom {
		return nil, errors.New("boom")
	}

	var pages []confluence.Page
	for i := start; i < start+limit && i < f.total; i++ {
		pages = append(pages, confluence.Page{
			ID:      fmt.Sprintf("%d", i),
			Title:   fmt.Sprintf("Page %d", i),
			Body:    fmt.Sprintf("<p>Body of page %d</p>", i),
			Version: 1,
			WebUI:   fmt.Sprintf("/x/%d", i),
		})
	}
	return pages, nil
}

func (f *fakeSource) PageLink(webui string) string {
	return "https://wiki.example.com" + webui
}

func TestRunPaginatesUntilShortBatch(t *testing.T) {
	// 60 pages with batch size 25: fetches at 0, 25, 50, then stop.
	src := &fakeSource{total: 60}
	c := New(src, 25, "")

	docs, err := c.Run(context.Background(), "ENG")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantCalls := []int{0, 25, 50}
	if len(src.calls) != len(wantCalls) {
		t.Fatalf("got %d list calls %v, want %v", len(src.calls), src.calls, wantCalls)
	}
	for i, want := range wantCalls {
		if src.calls[i] != want {
			t.Errorf("call %d at start=%d, want %d", i, src.calls[i], want)
		}
	}

	if len(docs) != 60 {
		t.Fatalf("got %d docs, want 60", len(docs))
	}
	if docs[0].Text != "Body of page 0" {
		t.Errorf("text not cleaned: %q", docs[0].Text)
	}
	if docs[0].URL != "https://wiki.example.com/x/0" {
		t.Errorf("url = %q", docs[0].URL)
	}
}

func TestRunExactMultipleIssuesOneExtraFetch(t *testing.T) {
	// 50 pages with batch size 25: the third fetch returns 0 results and
	// terminates the loop.
	src := &fakeSource{total: 50}
	c := New(src, 25, "")

	docs, err := c.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(docs) != 50 {
		t.Errorf("got %d docs, want 50", len(docs))
	}
	if len(src.calls) != 3 {
		t.Errorf("got calls %v, want exactly 3", src.calls)
	}
}

func TestRunAbortsOnFetchFailure(t *testing.T) {
	src := &fakeSource{total: 60, failFrom: 25}
	c := New(src, 25, "")

	if _, err := c.Run(context.Background(), "ENG"); err == nil {
		t.Fatal("expected crawl to abort")
	}
}

func TestRunWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	src := &fakeSource{total: 3}
	c := New(src, 25, path)

	if _, err := c.Run(context.Background(), "ENG"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	docs, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("snapshot has %d docs, want 3", len(docs))
	}
	if docs[1].Title != "Page 1" {
		t.Errorf("title = %q", docs[1].Title)
	}
}

func TestSnapshotOverwrittenWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")

	if err := WriteSnapshot(path, []Document{{ID: "old1"}, {ID: "old2"}}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	if err := WriteSnapshot(path, []Document{{ID: "new"}}); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	docs, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "new" {
		t.Errorf("snapshot not overwritten: %+v", docs)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "old1") {
		t.Error("stale content left in snapshot file")
	}
}

func TestProgressCallback(t *testing.T) {
	src := &fakeSource{total: 60}
	c := New(src, 25, "")

	var reported []int
	c.SetProgressFunc(func(fetched int) { reported = append(reported, fetched) })

	if _, err := c.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []int{25, 50, 60}
	if len(reported) != len(want) {
		t.Fatalf("progress calls = %v, want %v", reported, want)
	}
	for i := range want {
		if reported[i] != want[i] {
			t.Errorf("progress[%d] = %d, want %d", i, reported[i], want[i])
		}
	}
}
