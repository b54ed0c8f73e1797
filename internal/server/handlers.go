package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/deckgrid/deckgrid/pkg/catalog"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/pipeline"
)

// handleLayout composes a TOML manifest body into a layout document.
// Query parameters: compact=1 drops indentation, refresh=1 bypasses the
// cache. The X-Cache header reports whether the document was served from
// cache.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxManifestBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading manifest body"))
		return
	}
	if len(raw) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "empty manifest body"))
		return
	}

	q := r.URL.Query()
	doc, cacheHit, err := s.runner.ComposeDocument(r.Context(), raw, pipeline.DocumentOptions{
		Compact: q.Get("compact") == "1",
		Refresh: q.Get("refresh") == "1",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if cacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(doc)
}

func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	schemes, err := s.schemes.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, schemes)
}

func (s *Server) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	scheme, err := s.schemes.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, scheme)
}

// handleSuggestScheme resolves a topic to its suggested scheme.
func (s *Server) handleSuggestScheme(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "missing topic query parameter"))
		return
	}

	scheme, err := s.schemes.Get(r.Context(), catalog.Suggest(topic))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, suggestResponse{Topic: topic, Scheme: scheme})
}

type suggestResponse struct {
	Topic  string         `json:"topic"`
	Scheme catalog.Scheme `json:"scheme"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed",
			"path", r.URL.Path,
			"err", err,
			"request_id", requestIDFrom(r.Context()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, r, statusFor(code), errorResponse{
		Error:     err.Error(),
		Code:      string(code),
		RequestID: requestIDFrom(r.Context()),
	})
}

// statusFor maps engine error codes onto HTTP statuses. Manifest and input
// problems are client errors; unresolved overflow is a semantic rejection of
// an otherwise valid manifest.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidInput,
		errors.ErrCodeConfiguration, errors.ErrCodeInvalidAnchor:
		return http.StatusBadRequest
	case errors.ErrCodeUnresolvedOverflow:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeSchemeNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
