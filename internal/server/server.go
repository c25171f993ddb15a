package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wikisage/wikisage/internal/config"
	"github.com/wikisage/wikisage/internal/crawler"
	"github.com/wikisage/wikisage/internal/history"
	"github.com/wikisage/wikisage/internal/indexer"
	"github.com/wikisage/wikisage/internal/pipeline"
)

// Options carries the server's runtime settings.
type Options struct {
	Port     int
	Mode     config.Mode
	SpaceKey string // default crawl scope when the request names none
	DataDir  string
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server wires the retrieval pipelines behind the HTTP surface. Exactly one
// of keyword/embedding is set, matching Options.Mode.
type Server struct {
	opts      Options
	keyword   *pipeline.Keyword
	embedding *pipeline.Embedding
	crawl     *crawler.Crawler
	index     *indexer.Indexer
	history   *history.Store

	router     chi.Router
	httpServer *http.Server
}

// New creates a server for the configured mode. index may be nil in keyword
// mode; history may be nil to disable operation recording.
func New(opts Options, kw *pipeline.Keyword, emb *pipeline.Embedding, crawl *crawler.Crawler, index *indexer.Indexer, hist *history.Store) *Server {
	s := &Server{
		opts:      opts,
		keyword:   kw,
		embedding: emb,
		crawl:     crawl,
		index:     index,
		history:   hist,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.opts.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/chat", s.handleChat)
	r.Get("/crawl-all", s.handleCrawlAll)

	if s.history != nil {
		history.RegisterRoutes(r, s.history)
	}

	return r
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("wikisage server listening on %s (mode=%s)", addr, s.opts.Mode)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
