package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nkiryanov/exertrack/internal/apperrors"
	"github.com/nkiryanov/exertrack/internal/models"
	"github.com/nkiryanov/exertrack/internal/repository"
)

type Config struct {
	// Fail listing when no users exist at all
	// The behavior is questionable but it is what clients of the service expect
	StrictEmptyList bool
}

type UserService struct {
	cfg      Config
	userRepo repository.UserRepo
}

func NewService(cfg Config, userRepo repository.UserRepo) *UserService {
	return &UserService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// CreateUser stores new user with given username
// Whitespace-only usernames are rejected, surrounding whitespace is trimmed
func (s *UserService) CreateUser(ctx context.Context, username string) (models.User, error) {
	var user models.User

	username = strings.TrimSpace(username)
	if username == "" {
		return user, apperrors.ErrUsernameInvalid
	}

	user, err := s.userRepo.CreateUser(ctx, username)
	if err != nil {
		return user, fmt.Errorf("can't create user. Err: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// ListUsers returns every known user
// With StrictEmptyList set an empty store is an error, not an empty list
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list users. Err: %w", err)
	}

	if len(users) == 0 && s.cfg.StrictEmptyList {
		return nil, apperrors.ErrNoUsers
	}

	return users, nil
}
