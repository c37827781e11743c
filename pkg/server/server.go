// Package server exposes the proof service over HTTP for claim frontends.
package server

import (
	"context"
	"net/http"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/airdrop"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server handles HTTP requests for the proof service
type Server struct {
	service    *airdrop.Service
	logger     *zap.Logger
	config     *config.ServerConfig
	router     *chi.Mux
	httpServer *http.Server
}

// NewServer creates a new server instance
func NewServer(service *airdrop.Service, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger,
		config:  cfg,
	}
	s.initRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// initRouter creates the router with all the routes and middleware.
func (s *Server) initRouter() {
	s.router = chi.NewRouter()

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}).Handler)
	s.router.Use(requestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if s.config.RateLimit > 0 {
		s.router.Use(newClientLimiters(s.config.RateLimit, s.config.RateBurst).middleware)
	}

	s.registerHandlers()
}

// registerHandlers registers all the API handlers.
func (s *Server) registerHandlers() {
	s.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	s.router.Get(HealthEndpoint, s.health)
	s.router.Get(RootEndpoint, s.root)
	s.router.Get(ProofEndpoint, s.proof)
	s.router.Post(VerifyEndpoint, s.verify)
	s.router.Get(EligibilityEndpoint, s.eligibility)
	s.router.Post(ReloadEndpoint, s.reload)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrResourceNotFound.Withf("%s %s", r.Method, r.URL.Path).Write(w)
	})

	_ = chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		s.logger.Sugar().Debugw("Registered handler", "method", method, "endpoint", route)
		return nil
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		s.logger.Sugar().Infow("Starting HTTP server", "address", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the HTTP server down
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.router
}
