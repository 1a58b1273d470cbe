package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type HabitRepository struct {
	server *server.Server
}

func NewHabitRepository(s *server.Server) *HabitRepository {
	return &HabitRepository{server: s}
}

const habitColumns = `id, user_id, category, description, date_logged, created_at, updated_at`

// $1 is the habit id, $2 the owner.
const updateHabitCategoryForUserSQL = `
		UPDATE habits
		SET category = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2`

func (r *HabitRepository) Create(ctx context.Context, userID int64, category, description string) (*model.Habit, error) {
	stmt := `
		INSERT INTO habits (user_id, category, description)
		VALUES ($1, $2, $3)
		RETURNING ` + habitColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID, category, description)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create habit query for user_id=%d: %w", userID, err)
	}

	habit, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Habit])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:habits for user_id=%d: %w", userID, err)
	}

	return &habit, nil
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID int64) ([]model.Habit, error) {
	stmt := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list habits query for user_id=%d: %w", userID, err)
	}

	habits, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Habit])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:habits for user_id=%d: %w", userID, err)
	}

	return habits, nil
}

// UpdateCategoryForUser sets the category of a habit owned by userID and
// reports how many rows changed.
func (r *HabitRepository) UpdateCategoryForUser(ctx context.Context, userID, habitID int64, category string) (int64, error) {
	tag, err := r.server.DB.Pool.Exec(ctx, updateHabitCategoryForUserSQL, habitID, userID, category)
	if err != nil {
		return 0, fmt.Errorf("failed to update habit_id=%d for user_id=%d: %w", habitID, userID, err)
	}

	return tag.RowsAffected(), nil
}
