// Package server exposes the layout engine as an HTTP service. It composes
// manifests through the shared pipeline runner and serves the color-scheme
// catalog; every response carries a request ID for log correlation.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/deckgrid/deckgrid/pkg/catalog"
	"github.com/deckgrid/deckgrid/pkg/observability"
	"github.com/deckgrid/deckgrid/pkg/pipeline"
)

// maxManifestBytes bounds the accepted request body size.
const maxManifestBytes = 1 << 20

// Server handles layout and catalog requests.
type Server struct {
	runner  *pipeline.Runner
	schemes catalog.Store
	logger  *log.Logger
}

// New creates a server around a pipeline runner and a scheme store. A nil
// logger falls back to the default logger.
func New(runner *pipeline.Runner, schemes catalog.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, schemes: schemes, logger: logger}
}

// Router builds the HTTP routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/decks/layout", s.handleLayout)
		r.Get("/schemes", s.handleListSchemes)
		r.Get("/schemes/suggest", s.handleSuggestScheme)
		r.Get("/schemes/{name}", s.handleGetScheme)
	})
	return r
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns a UUID to each request and echoes it in the response.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// logRequests logs one line per request and feeds the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", requestIDFrom(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
