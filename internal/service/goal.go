package service

import (
	"context"
	"fmt"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
)

type GoalStore interface {
	Create(ctx context.Context, userID int64, metric string, targetValue float64) (*model.Goal, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Goal, error)
	UpdateForUser(ctx context.Context, userID, goalID int64, p repository.UpdateGoalParams) (*model.Goal, error)
	DeleteForUser(ctx context.Context, userID, goalID int64) (*model.Goal, error)
}

type GoalService struct {
	goals GoalStore
	users UserChecker
}

func NewGoalService(goals GoalStore, users UserChecker) *GoalService {
	return &GoalService{goals: goals, users: users}
}

func (s *GoalService) Create(ctx context.Context, userID int64, metric string, targetValue float64) (*model.Goal, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	goal, err := s.goals.Create(ctx, userID, metric, targetValue)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) List(ctx context.Context, userID int64) ([]model.Goal, error) {
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return orEmpty(goals), nil
}

// Update only touches a goal owned by userID.
func (s *GoalService) Update(ctx context.Context, userID, goalID int64, p repository.UpdateGoalParams) (*model.Goal, error) {
	goal, err := s.goals.UpdateForUser(ctx, userID, goalID, p)
	if err != nil {
		return nil, notFound(err, "Goal not found or not updated", "update goal")
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID int64) (*model.Goal, error) {
	goal, err := s.goals.DeleteForUser(ctx, userID, goalID)
	if err != nil {
		return nil, notFound(err, "Goal not found", "delete goal")
	}
	return goal, nil
}
