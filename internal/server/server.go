package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"matchday-companion/internal/auth"
	"matchday-companion/internal/backend"
	"matchday-companion/internal/cache"
	"matchday-companion/internal/config"
	httpserver "matchday-companion/internal/http"
	"matchday-companion/internal/metrics"
	"matchday-companion/internal/probe"
	"matchday-companion/internal/sync"
	"matchday-companion/internal/syncer"
)

var metricsSetup = metrics.Setup

// Server owns the companion's components and their lifecycle.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	recorder      *metrics.Recorder
	db            *sql.DB
	engine        *sync.Engine
	syncer        *syncer.Syncer
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New wires the full companion: cache, backend client, sync engine, sync
// loop, and the local HTTP surface.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown, err := buildMetrics(cfg)
	if err != nil {
		return nil, err
	}

	db, err := cache.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	repo := cache.NewRepository(db)
	authStore := auth.NewStore(repo)

	client := backend.NewClient(backend.Config{
		BaseURL:       cfg.Backend.BaseURL,
		DataTimeout:   cfg.Backend.DataTimeout,
		HealthTimeout: cfg.Backend.HealthTimeout,
	})
	api := backend.NewRetryingAPI(client, logger, recorder, cfg.Backend.RetryAttempts, cfg.Backend.RetryBackoff)

	prober := probe.New(client, logger)
	engine := sync.New(api, repo, authStore, prober, logger, recorder)
	loop := syncer.New(engine, logger, cfg.SyncInterval)

	handler := httpserver.NewHandler(engine, loop, prober, authStore, logger)
	router := httpserver.NewRouter(handler)
	wrapped := httpserver.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		recorder:      recorder,
		db:            db,
		engine:        engine,
		syncer:        loop,
		httpServer:    netHTTPServer{srv: srv},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

func buildMetrics(cfg config.Config) (*metrics.Recorder, httpServer, func(context.Context) error, error) {
	recorder, promHandler, shutdown, err := metricsSetup(context.Background(), metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	var metricsSrv httpServer
	if promHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promHandler)
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + cfg.Metrics.Port,
			Handler: mux,
		}}
	}
	return recorder, metricsSrv, shutdown, nil
}

// Run starts the sync loop and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.syncer.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onExit func(error)) {
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Error(name+" server failed", "error", err)
			}
			if onExit != nil {
				onExit(err)
			}
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.syncer.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("syncer shutdown failed", "error", err)
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("http server shutdown failed", "error", err)
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("metrics server shutdown failed", "error", err)
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("metrics shutdown failed", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && s.logger != nil {
			s.logger.Error("cache close failed", "error", err)
		}
	}
	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}
