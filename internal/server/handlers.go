package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/wikisage/wikisage/internal/config"
	"github.com/wikisage/wikisage/internal/crawler"
	"github.com/wikisage/wikisage/internal/history"
	"github.com/wikisage/wikisage/internal/pipeline"
)

// crawlPreviewSize is how many cleaned documents the keyword-mode crawl
// response includes as a preview.
const crawlPreviewSize = 5

type chatBody struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	start := time.Now()
	switch s.opts.Mode {
	case config.ModeEmbedding:
		s.chatEmbedding(w, r, body.Message, start)
	default:
		s.chatKeyword(w, r, body.Message, start)
	}
}

func (s *Server) chatKeyword(w http.ResponseWriter, r *http.Request, question string, start time.Time) {
	reply, err := s.keyword.Chat(r.Context(), question)
	if err != nil {
		if pipeline.IsValidation(err) {
			s.recordChat(question, start, history.StatusRejected)
			writeJSON(w, http.StatusBadRequest, map[string]string{"reply": err.Error()})
			return
		}
		// Upstream detail stays in the server log.
		log.Printf("server: chat failed: %v", err)
		s.recordChat(question, start, history.StatusFailed)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"reply": "Error processing your request."})
		return
	}

	s.recordChat(question, start, history.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) chatEmbedding(w http.ResponseWriter, r *http.Request, question string, start time.Time) {
	ans, err := s.embedding.Chat(r.Context(), question)
	if err != nil {
		log.Printf("server: chat failed: %v", err)
		s.recordChat(question, start, history.StatusFailed)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error processing your request."})
		return
	}

	s.recordChat(question, start, history.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{
		"answer":  ans.Answer,
		"sources": ans.Sources,
	})
}

func (s *Server) handleCrawlAll(w http.ResponseWriter, r *http.Request) {
	spaceKey := r.URL.Query().Get("spaceKey")
	if spaceKey == "" {
		spaceKey = s.opts.SpaceKey
	}

	start := time.Now()
	docs, err := s.crawl.Run(r.Context(), spaceKey)
	if err != nil {
		log.Printf("server: crawl failed: %v", err)
		s.recordCrawl(history.CrawlRun{
			SpaceKey:   spaceKey,
			DurationMS: time.Since(start).Milliseconds(),
			Status:     history.StatusFailed,
			Error:      err.Error(),
		})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to crawl the wiki."})
		return
	}

	run := history.CrawlRun{
		SpaceKey:     spaceKey,
		PagesCrawled: len(docs),
		Status:       history.StatusOK,
	}

	if s.opts.Mode == config.ModeEmbedding {
		res, err := s.index.Index(r.Context(), docs, vectorDir(s.opts.DataDir))
		if err != nil {
			log.Printf("server: indexing failed: %v", err)
			run.Status = history.StatusFailed
			run.Error = err.Error()
			run.DurationMS = time.Since(start).Milliseconds()
			s.recordCrawl(run)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to index the crawled pages."})
			return
		}
		run.PagesIndexed = res.Indexed
		run.PagesSkipped = res.Skipped
		run.DurationMS = time.Since(start).Milliseconds()
		s.recordCrawl(run)

		writeJSON(w, http.StatusOK, map[string]any{
			"status":       fmt.Sprintf("Indexed %d of %d crawled pages.", res.Indexed, len(docs)),
			"totalIndexed": res.Indexed,
		})
		return
	}

	run.DurationMS = time.Since(start).Milliseconds()
	s.recordCrawl(run)

	preview := docs
	if len(preview) > crawlPreviewSize {
		preview = preview[:crawlPreviewSize]
	}
	if preview == nil {
		preview = []crawler.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Successfully crawled %d pages.", len(docs)),
		"pages":   preview,
	})
}

// recordChat stores one chat request in the history DB. History failures
// are logged only; they never affect the response.
func (s *Server) recordChat(question string, start time.Time, status string) {
	if s.history == nil {
		return
	}
	err := s.history.RecordChat(context.Background(), history.ChatRequest{
		Mode:       string(s.opts.Mode),
		Question:   question,
		DurationMS: time.Since(start).Milliseconds(),
		Status:     status,
	})
	if err != nil {
		log.Printf("server: recording chat history: %v", err)
	}
}

func (s *Server) recordCrawl(run history.CrawlRun) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordCrawl(context.Background(), run); err != nil {
		log.Printf("server: recording crawl history: %v", err)
	}
}

func vectorDir(dataDir string) string {
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, "vectordb")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
