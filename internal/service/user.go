package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/virilis/backend/internal/model"
)

type UserStore interface {
	UserChecker
	Create(ctx context.Context, name, email string) (*model.User, error)
	GetByID(ctx context.Context, userID int64) (*model.User, error)
}

type UserService struct {
	users UserStore
	jobs  JobEnqueuer
}

func NewUserService(users UserStore, jobs JobEnqueuer) *UserService {
	return &UserService{users: users, jobs: jobs}
}

// Create registers a user and queues the welcome email.
// Failing to queue the email does not fail the registration.
func (s *UserService) Create(ctx context.Context, name, email string) (*model.User, error) {
	user, err := s.users.Create(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", user.ID).Msg("failed to enqueue welcome email")
		}
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found", "get user")
	}
	return user, nil
}
