// Package http serves the defaulting engine over a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/indicator"
	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/pkg/domain"
	"github.com/aretw0/indicator/pkg/ports"
	"github.com/aretw0/indicator/pkg/schema"
)

// MaxBodyBytes bounds request documents.
const MaxBodyBytes = 1 << 20

// Engine defines the interface for the defaulting core.
type Engine interface {
	SupplyAll(ctx context.Context, doc *domain.Document) ([]*indicator.Result, error)
	Lint(traceIn map[string]any) error
	Schema() schema.Object
}

// Watcher notifies about stored documents that changed.
type Watcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Server holds the handlers. Source and Watcher are optional; the routes
// that need them answer 404 when they are nil.
type Server struct {
	Engine  Engine
	Source  ports.DocumentSource
	Watcher Watcher
	Logger  *slog.Logger
}

// NewHandler creates a new HTTP handler for the server.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/schema", s.GetSchema)
	r.Post("/defaults", s.PostDefaults)
	r.Post("/lint", s.PostLint)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Get("/{id}", s.GetDocument)
		r.Put("/{id}", s.PutDocument)
		r.Delete("/{id}", s.DeleteDocument)
		r.Get("/{id}/defaults", s.GetDocumentDefaults)
	})
	r.Get("/events", s.SubscribeEvents)

	return r
}

// Mount adds extra handlers (such as /metrics) next to the API routes.
func Mount(h http.Handler, pattern string, extra http.Handler) http.Handler {
	if r, ok := h.(chi.Router); ok {
		r.Handle(pattern, extra)
	}
	return h
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "indicator-http",
		"version": strings.TrimSpace(indicator.Version),
		"trace":   domain.TraceType,
	})
}

// GetSchema handles the GET /schema request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Schema())
}

// PostDefaults handles the POST /defaults request. The body is a document
// ({layout, traces}) or a single bare trace. ?private=true keeps the
// internal keys in the output.
func (s *Server) PostDefaults(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	s.supply(w, r, doc)
}

// PostLint handles the POST /lint request.
func (s *Server) PostLint(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.Lint(s.Engine, doc.ID, doc.Traces))
}

// ListDocuments handles the GET /documents request.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.Source == nil {
		http.Error(w, "No document source configured", http.StatusNotFound)
		return
	}
	ids, err := s.Source.List(r.Context())
	if err != nil {
		s.fail(w, "List failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"documents": ids})
}

// GetDocument handles the GET /documents/{id} request.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PutDocument handles the PUT /documents/{id} request. The body is a
// document or a bare trace; the path ID wins over any ID in the body.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	store, ok := s.store(w)
	if !ok {
		return
	}
	doc, ok := s.readDocument(w, r)
	if !ok {
		return
	}
	doc.ID = chi.URLParam(r, "id")
	if err := store.Save(r.Context(), doc); err != nil {
		s.fail(w, "Save failed", err)
		return
	}
	s.Logger.Info("Document saved", "id", doc.ID, "traces", len(doc.Traces))
	writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles the DELETE /documents/{id} request.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	store, ok := s.store(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := store.Delete(r.Context(), id); err != nil {
		s.fail(w, "Delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDocumentDefaults handles the GET /documents/{id}/defaults request.
func (s *Server) GetDocumentDefaults(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.supply(w, r, doc)
}

// SubscribeEvents handles the GET /events request (SSE). Every changed
// document ID is sent as one data line.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.Watcher == nil {
		http.Error(w, "No watcher configured", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Watcher.Watch(r.Context())
	if err != nil {
		s.fail(w, "Watch error", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", id)
			flusher.Flush()
		}
	}
}

func (s *Server) supply(w http.ResponseWriter, r *http.Request, doc *domain.Document) {
	results, err := s.Engine.SupplyAll(r.Context(), doc)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		s.Logger.Warn("Defaults failed", "document", doc.ID, "err", err)
		http.Error(w, fmt.Sprintf("Defaults error: %v", err), status)
		return
	}

	private, _ := strconv.ParseBool(r.URL.Query().Get("private"))
	writeJSON(w, http.StatusOK, dto.NewReport(doc.ID, results, private))
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*domain.Document, bool) {
	var raw map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return nil, false
	}
	doc, err := domain.DecodeDocument(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusBadRequest)
		return nil, false
	}
	return doc, true
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*domain.Document, bool) {
	if s.Source == nil {
		http.Error(w, "No document source configured", http.StatusNotFound)
		return nil, false
	}
	id := chi.URLParam(r, "id")
	doc, err := s.Source.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTraceNotFound) {
			http.Error(w, fmt.Sprintf("Document %q not found", id), http.StatusNotFound)
			return nil, false
		}
		if errors.Is(err, domain.ErrEmptyDocument) {
			http.Error(w, fmt.Sprintf("Document %q has no traces", id), http.StatusUnprocessableEntity)
			return nil, false
		}
		s.fail(w, "Lookup failed", err)
		return nil, false
	}
	return doc, true
}

func (s *Server) store(w http.ResponseWriter) (ports.DocumentStore, bool) {
	if s.Source == nil {
		http.Error(w, "No document source configured", http.StatusNotFound)
		return nil, false
	}
	store, ok := s.Source.(ports.DocumentStore)
	if !ok {
		http.Error(w, "Document source is read-only", http.StatusMethodNotAllowed)
		return nil, false
	}
	return store, true
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	s.Logger.Error(msg, "err", err)
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
