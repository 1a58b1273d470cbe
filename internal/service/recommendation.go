package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/virilis/backend/internal/errs"
	"github.com/virilis/backend/internal/model"
)

// CompletedCategory is written to a habit when its recommendation is completed.
const CompletedCategory = "completed"

var recommendations = []model.Recommendation{
	{ID: 1, Description: "Increase vitamin C intake"},
	{ID: 2, Description: "Exercise regularly"},
}

type HabitCategoryUpdater interface {
	UpdateCategoryForUser(ctx context.Context, userID, habitID int64, category string) (int64, error)
}

// RecommendationService serves a fixed recommendation list. Completing a
// recommendation marks the user's habit with the same id as completed.
type RecommendationService struct {
	habits HabitCategoryUpdater
	users  UserChecker
}

func NewRecommendationService(habits HabitCategoryUpdater, users UserChecker) *RecommendationService {
	return &RecommendationService{habits: habits, users: users}
}

func (s *RecommendationService) List(ctx context.Context, userID int64) ([]model.Recommendation, error) {
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	out := make([]model.Recommendation, len(recommendations))
	copy(out, recommendations)
	return out, nil
}

func (s *RecommendationService) Complete(ctx context.Context, userID, recommendationID int64) (*model.Recommendation, error) {
	updated, err := s.habits.UpdateCategoryForUser(ctx, userID, recommendationID, CompletedCategory)
	if err != nil {
		return nil, fmt.Errorf("complete recommendation: %w", err)
	}
	if updated == 0 {
		return nil, errs.NewNotFoundError("Recommendation not found or not updated", true, nil)
	}

	zerolog.Ctx(ctx).Info().
		Int64("user_id", userID).
		Int64("recommendation_id", recommendationID).
		Msg("recommendation completed")

	return &model.Recommendation{
		ID:          recommendationID,
		Completed:   true,
		Description: recommendationDescription(recommendationID),
	}, nil
}

// recommendationDescription falls back to the first entry for unknown ids.
func recommendationDescription(id int64) string {
	for _, r := range recommendations {
		if r.ID == id {
			return r.Description
		}
	}
	return recommendations[0].Description
}
