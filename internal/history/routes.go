package history

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only history endpoints.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/crawls", handleListCrawls(store))
	r.Get("/api/chats", handleListChats(store))
}

func handleListCrawls(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := store.ListCrawls(r.Context(), limitParam(r))
		if err != nil {
			http.Error(w, "failed to list crawl runs", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []CrawlRun{}
		}
		writeJSON(w, runs)
	}
}

func handleListChats(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs, err := store.ListChats(r.Context(), limitParam(r))
		if err != nil {
			http.Error(w, "failed to list chat requests", http.StatusInternalServerError)
			return
		}
		if reqs == nil {
			reqs = []ChatRequest{}
		}
		writeJSON(w, reqs)
	}
}

func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
