package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tingnect/event-api/internal/config"
	"github.com/tingnect/event-api/internal/pipeline"
)

// Server is the HTTP front of the event API: the three form endpoints, the
// event-info endpoint, and a health check.
type Server struct {
	Router *chi.Mux
	Port   int

	logger *slog.Logger
	http   *http.Server
}

func New(cfg *config.Config, pipe *pipeline.Pipeline, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	// Apply middleware in order
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(30 * time.Second))
	r.Use(middleware.Recoverer)

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "tingnect-event-api")
	})

	h := &handlers{pipe: pipe, event: cfg.Event, logger: logger}

	r.Get("/healthz", h.health)
	r.Get("/api/event", h.eventInfo)
	r.Post("/api/contact", h.submitContact)
	r.Post("/api/sponsor", h.submitSponsor)
	r.Post("/api/register", h.submitRegistration)

	return &Server{
		Router: r,
		Port:   cfg.Server.Port,
		logger: logger,
	}
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Port),
		Handler: s.Router,
	}
	s.logger.Info("starting server", slog.Int("port", s.Port))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
