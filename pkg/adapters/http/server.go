package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/internal/presentation/graph"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 64 << 10

// Server exposes diagrams over HTTP.
type Server struct {
	Sessions ports.DiagramService
	Streams  *StreamManager

	metrics   http.Handler
	onDelete  []func(id string)
	logger    *slog.Logger
	keepAlive time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithStreams shares a StreamManager with the session manager that feeds it.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetricsHandler serves h on /metrics instead of the global Prometheus registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithDeleteHook runs fn after a diagram is deleted.
func WithDeleteHook(fn func(id string)) Option {
	return func(s *Server) {
		s.onDelete = append(s.onDelete, fn)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKeepAlive sets the interval of SSE keep-alive comments.
func WithKeepAlive(d time.Duration) Option {
	return func(s *Server) {
		s.keepAlive = d
	}
}

// NewServer builds a Server over sessions.
func NewServer(sessions ports.DiagramService, opts ...Option) *Server {
	s := &Server{
		Sessions:  sessions,
		logger:    logging.NewNop(),
		keepAlive: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	if s.metrics == nil {
		s.metrics = promhttp.Handler()
	}
	return s
}

// Routes returns the chi router with every documented endpoint.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Method(http.MethodGet, "/metrics", s.metrics)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.ListDiagrams)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDiagram)
			r.Put("/", s.CreateDiagram)
			r.Delete("/", s.DeleteDiagram)
			r.Post("/engage", s.EngageNode)
			r.Post("/remove", s.RemoveNode)
			r.Get("/events", s.SubscribeEvents)
			r.Get("/graph", s.GetGraph)
		})
	})
	return r
}

// NewHandler creates a new HTTP handler for the sessions.
func NewHandler(sessions ports.DiagramService, opts ...Option) http.Handler {
	return enableCORS(NewServer(sessions, opts...).Routes())
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "tessera-http",
		"version":     strings.TrimSpace(tessera.Version),
		"api_version": apiVersion,
	})
}

// GetOpenAPI serves the embedded API contract.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	_, _ = w.Write(rawSpec())
}

// ListDiagrams handles GET /diagrams.
func (s *Server) ListDiagrams(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetDiagram handles GET /diagrams/{id}.
func (s *Server) GetDiagram(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// CreateDiagram handles PUT /diagrams/{id}.
func (s *Server) CreateDiagram(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.LoadOrCreate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteDiagram handles DELETE /diagrams/{id}.
func (s *Server) DeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Streams.Forget(id)
	for _, fn := range s.onDelete {
		fn(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// EngageRequest is the body of POST /diagrams/{id}/engage.
type EngageRequest struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Descriptor string `json:"descriptor"`
}

// RemoveRequest is the body of POST /diagrams/{id}/remove.
type RemoveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EngageNode handles POST /diagrams/{id}/engage.
func (s *Server) EngageNode(w http.ResponseWriter, r *http.Request) {
	var body EngageRequest
	if err := decodeBody(w, r, "EngageRequest", &body); err != nil {
		s.badRequest(w, r, err)
		return
	}

	cs, err := s.Sessions.Engage(r.Context(), chi.URLParam(r, "id"), body.X, body.Y, body.Descriptor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// RemoveNode handles POST /diagrams/{id}/remove.
func (s *Server) RemoveNode(w http.ResponseWriter, r *http.Request) {
	var body RemoveRequest
	if err := decodeBody(w, r, "RemoveRequest", &body); err != nil {
		s.badRequest(w, r, err)
		return
	}

	cs, err := s.Sessions.Remove(r.Context(), chi.URLParam(r, "id"), body.X, body.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// GetGraph handles GET /diagrams/{id}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(snap, nil))
}

// SubscribeEvents handles GET /diagrams/{id}/events (SSE).
// The stream opens with the full snapshot when the diagram exists, then
// carries one diff per change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	var watchList []string
	if watch := r.URL.Query().Get("watch"); watch != "" {
		watchList = strings.Split(watch, ",")
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if snap, err := s.Sessions.Snapshot(r.Context(), id); err == nil {
		if payload, err := json.Marshal(snap); err == nil {
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
		}
	}
	flusher.Flush()
	s.logger.Info("SSE: client subscribed", "diagram", id)

	var tick <-chan time.Time
	if s.keepAlive > 0 {
		ticker := time.NewTicker(s.keepAlive)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "diagram", id)
			return
		case <-tick:
			fmt.Fprintf(w, ": keep-alive\n\n")
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watchList) > 0 && !matchesWatch(msg, watchList) {
				continue
			}
			fmt.Fprintf(w, "event: diff\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// matchesWatch reports whether a serialized diff touches any watched field.
func matchesWatch(msg string, watchList []string) bool {
	var diff domain.SnapshotDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watchList {
		switch strings.TrimSpace(field) {
		case "nodes":
			if len(diff.Added) > 0 || len(diff.Removed) > 0 || len(diff.Changed) > 0 {
				return true
			}
		case "bound":
			if diff.Bound != nil {
				return true
			}
		}
	}
	return false
}

// -- Helpers --

func decodeBody(w http.ResponseWriter, r *http.Request, schema string, dst any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validateBody(schema, raw); err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRemovalOnSingleNode),
		errors.Is(err, domain.ErrOccupiedCoordinate),
		errors.Is(err, domain.ErrDetachedCoordinate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrDiagramNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
