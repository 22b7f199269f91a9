package app

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/auth"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/config"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/delivery/httpd"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/repository"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/server"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/service"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/service/integration"
)

type App struct {
	server    *server.Server
	logger    zerolog.Logger
	db        *repository.PostgresRepository
	publisher integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sqlx.DB) (*App, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return nil, err
	}

	publisher := integration.NewNoopPublisher(log)
	if cfg.RabbitMQ.Enabled {
		publisher, err = integration.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			return nil, err
		}
	}

	userRepo := repository.NewUserRepository(db, log)
	groupRepo := repository.NewGroupRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)
	pg := repository.NewPostgresRepository(db, log)

	userService := service.NewUserService(userRepo, tokens, publisher, cfg.Auth.BcryptCost, log)
	groupService := service.NewGroupService(groupRepo, userRepo, assignmentRepo, publisher, log)

	handler := httpd.NewHandler(userService, groupService, tokens, pg, log)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return &App{
		server:    server.NewServer(cfg.Server, cfg.CORS, router, log),
		logger:    log,
		db:        pg,
		publisher: publisher,
	}, nil
}

func (a *App) Run() error {
	return a.server.Start()
}

// Shutdown drains the server first, then releases the broker and the database.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close event publisher")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return err
}
