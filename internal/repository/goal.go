package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type GoalRepository struct {
	server *server.Server
}

func NewGoalRepository(s *server.Server) *GoalRepository {
	return &GoalRepository{server: s}
}

const goalColumns = `id, user_id, metric, target_value, achieved, created_at, updated_at`

// Goal writes are scoped to the owner: $1 is the goal id, $2 the user id.
const (
	updateGoalForUserSQL = `
		UPDATE goals
		SET metric = $3,
		    target_value = $4,
		    achieved = COALESCE($5, achieved),
		    updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalColumns

	deleteGoalForUserSQL = `
		DELETE FROM goals
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalColumns
)

func (r *GoalRepository) Create(ctx context.Context, userID int64, metric string, targetValue float64) (*model.Goal, error) {
	stmt := `
		INSERT INTO goals (user_id, metric, target_value)
		VALUES ($1, $2, $3)
		RETURNING ` + goalColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID, metric, targetValue)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create goal query for user_id=%d: %w", userID, err)
	}

	goal, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Goal])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:goals for user_id=%d: %w", userID, err)
	}

	return &goal, nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID int64) ([]model.Goal, error) {
	stmt := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list goals query for user_id=%d: %w", userID, err)
	}

	goals, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Goal])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:goals for user_id=%d: %w", userID, err)
	}

	return goals, nil
}

type UpdateGoalParams struct {
	Metric      string
	TargetValue float64
	// Achieved keeps the stored value when nil.
	Achieved *bool
}

func (r *GoalRepository) UpdateForUser(ctx context.Context, userID, goalID int64, p UpdateGoalParams) (*model.Goal, error) {
	rows, err := r.server.DB.Pool.Query(ctx, updateGoalForUserSQL, goalID, userID, p.Metric, p.TargetValue, p.Achieved)
	if err != nil {
		return nil, fmt.Errorf("failed to execute update goal query for goal_id=%d: %w", goalID, err)
	}

	goal, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Goal])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:goals for goal_id=%d: %w", goalID, err)
	}

	return &goal, nil
}

func (r *GoalRepository) DeleteForUser(ctx context.Context, userID, goalID int64) (*model.Goal, error) {
	rows, err := r.server.DB.Pool.Query(ctx, deleteGoalForUserSQL, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute delete goal query for goal_id=%d: %w", goalID, err)
	}

	goal, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Goal])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:goals for goal_id=%d: %w", goalID, err)
	}

	return &goal, nil
}
