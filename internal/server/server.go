package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/config"
	appmiddleware "github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/middleware"
)

type Server struct {
	server *http.Server
	logger zerolog.Logger
	// routes are registered on appRouter, which is mounted under rootRouter once the chain is set
	appRouter  chi.Router
	rootRouter *chi.Mux
}

func NewServer(cfg config.ServerConfig, corsCfg config.CORSConfig, router chi.Router, logger zerolog.Logger) *Server {
	s := &Server{
		logger:     logger,
		appRouter:  router,
		rootRouter: chi.NewRouter(),
	}

	s.rootRouter.Use(middleware.RequestID)
	s.rootRouter.Use(middleware.RealIP)
	s.rootRouter.Use(middleware.CleanPath)
	s.rootRouter.Use(middleware.StripSlashes)
	s.rootRouter.Use(appmiddleware.NewCORS(corsCfg))
	s.rootRouter.Use(appmiddleware.RequestLogger(logger))
	s.rootRouter.Use(appmiddleware.Recovery(logger))
	if cfg.RequestTimeout > 0 {
		s.rootRouter.Use(appmiddleware.Timeout(cfg.RequestTimeout))
	}
	s.rootRouter.Mount("/", s.appRouter)

	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.rootRouter,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.rootRouter
}

// Start blocks until the server stops. A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("Starting server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server")
	return s.server.Shutdown(ctx)
}
