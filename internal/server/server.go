package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reportero-ai/reportero/internal/analyzer"
	"github.com/reportero-ai/reportero/internal/assign"
	"github.com/reportero-ai/reportero/internal/config"
	"github.com/reportero-ai/reportero/internal/llm"
	"github.com/reportero-ai/reportero/internal/narrative"
)

type Server struct {
	cfg         config.ServerConfig
	server      *http.Server
	analyzer    *analyzer.Analyzer
	synthesizer *narrative.Synthesizer
	assigner    *assign.Assigner
	provider    llm.Provider
	logger      *slog.Logger
}

func New(cfg config.Config, analyzer *analyzer.Analyzer, synthesizer *narrative.Synthesizer, assigner *assign.Assigner, provider llm.Provider, logger *slog.Logger) *Server {
	s := &Server{
		cfg:         cfg.Server,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		assigner:    assigner,
		provider:    provider,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/narrative/customize", s.handleCustomizeNarrative)
		r.Post("/assignments", s.handleAssignments)
		r.Get("/health", s.handleHealth)
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		s.logger.Info("http request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("starting server", "address", s.server.Addr)
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		s.logger.Info("starting shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}

// Custom response writer to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}
