// Package server exposes the web bridge: the embedded mobile page, the SSE
// pane-content stream, the command catalog, and the two injection endpoints.
//
// Each /stream connection runs its own mirror poller with its own baseline;
// nothing is shared between subscribers. Catalog, send, and key requests are
// short-lived and independent — a failure in one surface never affects the
// others.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/timvw/pane-relay/internal/catalog"
	"github.com/timvw/pane-relay/internal/injector"
	"github.com/timvw/pane-relay/internal/mirror"
	"github.com/timvw/pane-relay/internal/mux"
	relayotel "github.com/timvw/pane-relay/internal/otel"
)

//go:embed index.html
var indexPage []byte

var tracer = otel.Tracer("pane-relay")

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	// Mux is the session boundary used by mirror pollers and health checks.
	Mux mux.Multiplexer
	// Target is the pane every subscriber mirrors and every send hits.
	Target string
	// Scrollback is the history line count per capture.
	Scrollback int
	// PollInterval is the mirror cadence for each subscriber.
	PollInterval time.Duration
	// Catalog builds the command list, fresh on every request.
	Catalog *catalog.Builder
	// Injector performs send_text / send_key against the target pane.
	Injector *injector.Injector
	// Logger records request outcomes; nil disables logging.
	Logger *zap.Logger
	// Metrics records catalog builds; nil-safe.
	Metrics *relayotel.Metrics
}

// Routes returns the chi router for the full HTTP surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Get("/stream", s.handleStream)
	r.Get("/commands", s.handleCommands)
	r.Post("/send", s.handleSend)
	r.Post("/key", s.handleKey)
	r.Get("/healthz", s.handleHealthz)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

// handleStream opens a server-sent-events connection and pushes the full
// pane content whenever it changes, until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	poller := &mirror.Poller{
		Mux:        s.Mux,
		Target:     s.Target,
		Scrollback: s.Scrollback,
		Interval:   s.PollInterval,
		Metrics:    s.Metrics,
	}

	s.log("stream connected", zap.String("remote", r.RemoteAddr))
	defer s.log("stream disconnected", zap.String("remote", r.RemoteAddr))

	// The poller ends when the request context is cancelled, which is the
	// only way this loop exits.
	for snapshot := range poller.Snapshots(r.Context()) {
		data, err := json.Marshal(snapshot)
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	}
}

// handleCommands returns the command catalog, rebuilt from the descriptor
// sources on every call.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "build_catalog")
	defer span.End()

	commands := s.Catalog.Build()
	span.SetAttributes(attribute.Int("catalog.commands", len(commands)))
	s.Metrics.RecordCatalogBuild(ctx, len(commands))
	writeJSON(w, http.StatusOK, commands)
}

type textRequest struct {
	Text string `json:"text"`
}

type keyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "send_text",
		trace.WithAttributes(attribute.String("injection.kind", "text")))
	defer span.End()

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.SetAttributes(attribute.String("error.type", "invalid_body"))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		span.SetAttributes(attribute.String("error.type", "empty_text"))
		writeError(w, http.StatusBadRequest, "missing text")
		return
	}

	if err := s.Injector.SendText(ctx, req.Text); err != nil {
		span.SetAttributes(attribute.String("error.type", "injection_failed"))
		s.log("send text failed", zap.Error(err))
		writeError(w, injectionStatus(err), "send failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "send_key",
		trace.WithAttributes(attribute.String("injection.kind", "key")))
	defer span.End()

	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.SetAttributes(attribute.String("error.type", "invalid_body"))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Key == "" {
		span.SetAttributes(attribute.String("error.type", "empty_key"))
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}
	span.SetAttributes(attribute.String("injection.key", req.Key))

	if err := s.Injector.SendKey(ctx, req.Key); err != nil {
		span.SetAttributes(attribute.String("error.type", "injection_failed"))
		s.log("send key failed", zap.String("key", req.Key), zap.Error(err))
		writeError(w, injectionStatus(err), "send failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// handleHealthz reports whether the target pane is currently capturable.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.Mux.CapturePane(ctx, s.Target, 0); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unreachable",
			"target": s.Target,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"mux":    s.Mux.Name(),
		"target": s.Target,
	})
}

// injectionStatus maps an injection failure to an HTTP status: timeouts are
// gateway timeouts, everything else is a bad gateway to the session boundary.
func injectionStatus(err error) int {
	if errors.Is(err, injector.ErrTimeout) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func (s *Server) log(msg string, fields ...zap.Field) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(msg, fields...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
