// Package httpserver exposes rendered vote maps over HTTP alongside the
// usual health, readiness, and metrics endpoints.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cartovote/vote-map/internal/domain"
	"github.com/cartovote/vote-map/internal/pipeline"
)

// MapService builds choropleths on demand.
type MapService interface {
	SenateMap(ctx context.Context, congress, session, roll int) (pipeline.Map, error)
	HouseMap(ctx context.Context, congress, session, roll int) (pipeline.Map, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes map, health, readiness, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	maps       MapService
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(addr string, maps MapService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		maps:   maps,
		logger: logger,
	}

	mux.HandleFunc("GET /maps/{chamber}/{congress}/{session}/{roll}", s.handleMap)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	chamber := r.PathValue("chamber")
	if chamber != "senate" && chamber != "house" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":      "chamber must be senate or house",
			"request_id": requestID,
		})
		return
	}

	congress, err1 := strconv.Atoi(r.PathValue("congress"))
	session, err2 := strconv.Atoi(r.PathValue("session"))
	roll, err3 := strconv.Atoi(strings.TrimSuffix(r.PathValue("roll"), ".png"))
	if err1 != nil || err2 != nil || err3 != nil ||
		congress < 1 || (session != 1 && session != 2) || roll < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":      "congress, session, and roll must be positive integers with session 1 or 2",
			"request_id": requestID,
		})
		return
	}

	var m pipeline.Map
	var err error
	if chamber == "senate" {
		m, err = s.maps.SenateMap(r.Context(), congress, session, roll)
	} else {
		m, err = s.maps.HouseMap(r.Context(), congress, session, roll)
	}
	if err != nil {
		status := errStatus(err)
		s.logger.Error("map request failed",
			"request_id", requestID,
			"chamber", chamber,
			"congress", congress,
			"session", session,
			"roll", roll,
			"status", status,
			"error", err,
		)
		writeJSON(w, status, map[string]string{
			"error":      err.Error(),
			"request_id": requestID,
		})
		return
	}

	s.logger.Info("map served",
		"request_id", requestID,
		"chamber", chamber,
		"congress", congress,
		"session", session,
		"roll", roll,
		"bytes", len(m.PNG),
	)
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(m.PNG)
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.maps.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
