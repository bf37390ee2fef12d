package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/decorator"
	"github.com/ignite/response-prettier/internal/onsend"
)

// Server represents the API server
type Server struct {
	config     config.ServerConfig
	handler    http.Handler
	handlers   *Handlers
	router     *chi.Mux
	registry   *decorator.Registry
	pipeline   *onsend.Pipeline
	health     *HealthChecker
	server     *http.Server
	instanceID string
}

// NewServer creates a new API server. Plugins are attached afterwards with
// Decorate and AddHook, before the server starts serving.
func NewServer(cfg config.ServerConfig) *Server {
	registry := decorator.NewRegistry()
	pipeline := onsend.NewPipeline(respondHookError)
	instanceID := uuid.NewString()

	handlers := NewHandlers(registry)
	health := NewHealthChecker(registry, instanceID)
	router := SetupRoutes(cfg, handlers, health, pipeline)

	return &Server{
		config:     cfg,
		handler:    router,
		handlers:   handlers,
		router:     router,
		registry:   registry,
		pipeline:   pipeline,
		health:     health,
		instanceID: instanceID,
	}
}

// Decorate exposes v to handlers under name.
func (s *Server) Decorate(name string, v any) error {
	return s.registry.Decorate(name, v)
}

// AddHook appends h to the outbound hook chain.
func (s *Server) AddHook(h onsend.Hook) {
	s.pipeline.AddHook(h)
}

// Registry returns the capability registry.
func (s *Server) Registry() *decorator.Registry {
	return s.registry
}

// InstanceID identifies this server process in health output.
func (s *Server) InstanceID() string {
	return s.instanceID
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
