package service

import (
	"context"
	"fmt"

	"github.com/virilis/backend/internal/model"
)

type HabitStore interface {
	Create(ctx context.Context, userID int64, category, description string) (*model.Habit, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Habit, error)
}

type HabitService struct {
	habits HabitStore
	users  UserChecker
}

func NewHabitService(habits HabitStore, users UserChecker) *HabitService {
	return &HabitService{habits: habits, users: users}
}

func (s *HabitService) Create(ctx context.Context, userID int64, category, description string) (*model.Habit, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	habit, err := s.habits.Create(ctx, userID, category, description)
	if err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return habit, nil
}

func (s *HabitService) List(ctx context.Context, userID int64) ([]model.Habit, error) {
	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return orEmpty(habits), nil
}
