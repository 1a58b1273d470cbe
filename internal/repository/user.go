package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

const userColumns = `id, name, email, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, name, email string) (*model.User, error) {
	stmt := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, name, email)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create user query for email=%s: %w", email, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for email=%s: %w", email, err)
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get user query for user_id=%d: %w", userID, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:users for user_id=%d: %w", userID, err)
	}

	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user_id=%d exists: %w", userID, err)
	}
	return exists, nil
}
