// Package server provides the HTTP server of the chromatip color picker.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/metrics"
	"github.com/ayusman/chromatip/internal/server/api"
	"github.com/ayusman/chromatip/internal/store"
)

// Config holds the server configuration. Nil collaborators disable
// their routes.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Classifier *chroma.Classifier
	Session    api.SessionController
	Feed       *Feed
	Results    *Hub
	Metrics    *metrics.Metrics
}

// Server represents the HTTP server for the chromatip application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		colors := api.NewColorHandler(s.config.Store)
		s.mux.Handle("/api/colors", colors)
		s.mux.Handle("/api/colors/", colors)
	}

	classifier := s.config.Classifier
	if classifier == nil {
		classifier = chroma.NewClassifier(nil)
	}
	s.mux.Handle("/api/classify", api.NewClassifyHandler(classifier))

	if s.config.Session != nil {
		sess := api.NewSessionHandler(s.config.Session)
		s.mux.Handle("/api/session", sess)
		s.mux.Handle("/api/session/", sess)
	}

	if s.config.Feed != nil {
		s.mux.Handle("/api/stream", s.track(NewStreamHandler(s.config.Feed)))
	}

	if s.config.Results != nil {
		s.mux.Handle("/api/results", s.track(s.config.Results))
	}

	if s.config.Metrics != nil {
		s.mux.Handle("/metrics", s.config.Metrics.Handler())
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// track counts long-lived streaming connections in the metrics.
func (s *Server) track(h http.Handler) http.Handler {
	if s.config.Metrics == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.config.Metrics.StreamClients.Add(1)
		defer s.config.Metrics.StreamClients.Add(-1)
		h.ServeHTTP(w, r)
	})
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Session != nil {
		response["mode"] = s.config.Session.Mode()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if s.config.Feed != nil {
		s.config.Feed.Close()
	}
	if s.config.Results != nil {
		s.config.Results.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
