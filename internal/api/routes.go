package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ignite/response-prettier/internal/config"
	"github.com/ignite/response-prettier/internal/onsend"
	"github.com/ignite/response-prettier/internal/pkg/httputil"
)

// SetupRoutes configures all API routes.
//
// The outbound pipeline sits inside the request logger and outside the
// recoverer, so panic bodies and router errors reach the hooks like any
// other response.
func SetupRoutes(cfg config.ServerConfig, h *Handlers, hc *HealthChecker, pipeline *onsend.Pipeline) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.Use(pipeline.Handler)
	r.Use(recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httputil.NotFound(w, fmt.Sprintf("Route %s:%s not found", req.Method, req.URL.RequestURI()))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httputil.Error(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", req.Method, req.URL.Path))
	})

	r.Get("/", h.Index)

	// Health checks
	r.Get("/health", hc.HandleHealth)
	r.Get("/health/live", hc.HandleLiveness)
	r.Get("/health/ready", hc.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Get("/grammars", h.Grammars)
		r.Post("/format", h.Format)
	})

	return r
}
