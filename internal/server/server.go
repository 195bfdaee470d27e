package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brm/internal/processor"
	"brm/internal/storage"
	"brm/internal/streamcache"
	"brm/pkg/config"
)

// Server represents the HTTP server fronting the stream cache: it routes
// streaming requests to the cache manager and exposes operational
// endpoints (status, metrics) alongside it.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	port       int
	manager    *streamcache.Manager
}

// New creates a new server instance from server-specific configuration.
// rootCfg supplies the "storage" section (root and alias) the stream
// cache's local-filesystem backend is built against. Metrics are always
// registered against prometheus.DefaultRegisterer.
func New(serverCfg *config.Config, rootCfg *config.Config, logger *slog.Logger) *Server {
	port := serverCfg.GetIntWithDefault("port", 8080)
	readTimeout := serverCfg.GetIntWithDefault("readTimeout", 15)
	writeTimeout := serverCfg.GetIntWithDefault("writeTimeout", 0) // streaming responses must not be cut off
	idleTimeout := serverCfg.GetIntWithDefault("idleTimeout", 60)

	storageCfg := rootCfg.GetSubConfig("storage")
	storageRoot := storageCfg.GetStringWithDefault("root", "./data/encrypted")
	backend, err := storage.NewLocalFS(storageCfg.GetStringWithDefault("alias", "local"), storageRoot)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "root", storageRoot)
		backend = nil
	}

	metrics := streamcache.NewMetrics(prometheus.DefaultRegisterer)
	manager := streamcache.NewManager(backend, processor.Default(), metrics)

	mux := http.NewServeMux()
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}

	srv := &Server{
		httpServer: httpServer,
		logger:     logger,
		port:       port,
		manager:    manager,
	}

	srv.setupRoutes(mux)

	return srv
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/status", s.statusHandler)
	mux.HandleFunc("GET /stream/{docId}/{detailPath...}", s.streamHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting BRM server", "port", s.port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server gracefully")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the server port
func (s *Server) Port() int {
	return s.port
}
