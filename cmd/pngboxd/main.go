package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"pngbox/internal/pngbox"
	"pngbox/internal/pngbox/container"
	"pngbox/internal/pngbox/logger"
)

// maxUpload caps inspected uploads at 64MB.
const maxUpload = 64 << 20

// VersionResponse represents version information
type VersionResponse struct {
	Version string `json:"version"`
}

// InspectResponse represents the chunk inventory of an uploaded container
type InspectResponse struct {
	Records []container.Record `json:"records"`
	Valid   bool               `json:"valid"`
	Error   string             `json:"error,omitempty"`
}

// Server handles HTTP requests
type Server struct {
	log zerolog.Logger
}

func main() {
	// Parse command line flags
	addr := flag.String("addr", ":3000", "HTTP service address")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(pngbox.BuildInfo())
		os.Exit(0)
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "pngboxd").Logger()
	server := &Server{log: log}

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Routes
	r.Get("/api/version", server.handleVersion)
	r.Post("/api/inspect", server.handleInspect)

	log.Info().Str("addr", *addr).Msg("pngboxd listening")
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// handleVersion returns build information
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, VersionResponse{Version: pngbox.Version()})
}

// handleInspect reads an uploaded container, lists its record framing
// and reports whether a strict decode succeeds.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUpload))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err))
		return
	}

	records, err := container.Inspect(data, nil)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	resp := InspectResponse{Records: records, Valid: true}
	warn := &logger.ZeroLogger{L: s.log}
	if _, err := container.Decode(data, container.Options{Strict: true, Logger: warn}); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	s.respond(w, http.StatusOK, resp)
}

// respond writes a JSON response
func (s *Server) respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("writing response")
	}
}

// respondError writes a JSON error response
func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.log.Warn().Err(err).Int("status", status).Msg("request failed")
	s.respond(w, status, map[string]string{"error": err.Error()})
}
