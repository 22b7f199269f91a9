package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/auth"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/models"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/repository"
	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/service/integration"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, id int64) (*models.User, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *models.User) (string, time.Time, error)
}

type userService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	publisher  integration.EventPublisher
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	tokens TokenIssuer,
	publisher integration.EventPublisher,
	bcryptCost int,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo:   userRepo,
		tokens:     tokens,
		publisher:  publisher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    strings.TrimSpace(req.Email),
		Username: strings.TrimSpace(req.Username),
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Role:     models.Role(req.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, errUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("role", user.Role.String()).
		Msg("User registered")

	publish(ctx, s.publisher, s.logger, models.EventUserRegistered, &models.UserRegisteredEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Timestamp: time.Now().Unix(),
	})

	return user, nil
}

// Login answers with the same error for an unknown email and a wrong password.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash := ""
	if user != nil {
		hash = user.Password
	}
	if !auth.CheckPassword(hash, req.Password) {
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("User logged in")

	return &models.LoginResponse{
		User:      user,
		UserID:    user.ID,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	return user, nil
}

// publish never fails the caller; the database write already succeeded.
func publish(ctx context.Context, publisher integration.EventPublisher, logger zerolog.Logger, routingKey string, event interface{}) {
	if err := publisher.Publish(ctx, routingKey, event); err != nil {
		logger.Warn().Err(err).Str("routing_key", routingKey).Msg("Failed to publish event")
	}
}
