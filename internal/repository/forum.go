package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type ForumRepository struct {
	server *server.Server
}

func NewForumRepository(s *server.Server) *ForumRepository {
	return &ForumRepository{server: s}
}

const (
	forumPostColumns  = `id, user_id, content, created_at, updated_at`
	forumReplyColumns = `id, post_id, user_id, content, created_at, updated_at`
)

func (r *ForumRepository) CreatePost(ctx context.Context, userID int64, content string) (*model.ForumPost, error) {
	stmt := `
		INSERT INTO forum_posts (user_id, content)
		VALUES ($1, $2)
		RETURNING ` + forumPostColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create forum post query for user_id=%d: %w", userID, err)
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ForumPost])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:forum_posts for user_id=%d: %w", userID, err)
	}

	return &post, nil
}

// ListPosts returns posts newest first.
func (r *ForumRepository) ListPosts(ctx context.Context) ([]model.ForumPost, error) {
	stmt := `SELECT ` + forumPostColumns + ` FROM forum_posts ORDER BY created_at DESC, id DESC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list forum posts query: %w", err)
	}

	posts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ForumPost])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:forum_posts: %w", err)
	}

	return posts, nil
}

func (r *ForumRepository) GetPost(ctx context.Context, postID int64) (*model.ForumPost, error) {
	stmt := `SELECT ` + forumPostColumns + ` FROM forum_posts WHERE id = $1`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get forum post query for post_id=%d: %w", postID, err)
	}

	post, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ForumPost])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:forum_posts for post_id=%d: %w", postID, err)
	}

	return &post, nil
}

func (r *ForumRepository) PostExists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM forum_posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post_id=%d exists: %w", postID, err)
	}
	return exists, nil
}

func (r *ForumRepository) ListReplies(ctx context.Context, postID int64) ([]model.ForumReply, error) {
	stmt := `SELECT ` + forumReplyColumns + ` FROM forum_replies WHERE post_id = $1 ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list replies query for post_id=%d: %w", postID, err)
	}

	replies, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ForumReply])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:forum_replies for post_id=%d: %w", postID, err)
	}

	return replies, nil
}

func (r *ForumRepository) CreateReply(ctx context.Context, postID, userID int64, content string) (*model.ForumReply, error) {
	stmt := `
		INSERT INTO forum_replies (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING ` + forumReplyColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create reply query for post_id=%d: %w", postID, err)
	}

	reply, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ForumReply])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:forum_replies for post_id=%d: %w", postID, err)
	}

	return &reply, nil
}
