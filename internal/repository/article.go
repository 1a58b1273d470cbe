package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type ArticleRepository struct {
	server *server.Server
}

func NewArticleRepository(s *server.Server) *ArticleRepository {
	return &ArticleRepository{server: s}
}

const (
	articleColumns     = `id, title, content, category, created_at, updated_at`
	articleReadColumns = `id, user_id, article_id, created_at, updated_at`
)

// List returns all articles, filtered by a case-insensitive match on
// title, content or category when search is not empty.
func (r *ArticleRepository) List(ctx context.Context, search string) ([]model.Article, error) {
	stmt := `
		SELECT ` + articleColumns + `
		FROM articles`

	var args []any
	if search = strings.TrimSpace(search); search != "" {
		stmt += `
		WHERE title ILIKE $1 OR content ILIKE $1 OR category ILIKE $1`
		args = append(args, "%"+escapeLike(search)+"%")
	}
	stmt += `
		ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list articles query: %w", err)
	}

	articles, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Article])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:articles: %w", err)
	}

	return articles, nil
}

// MarkRead records a read. Repeated reads create new rows.
func (r *ArticleRepository) MarkRead(ctx context.Context, userID, articleID int64) (*model.ArticleRead, error) {
	stmt := `
		INSERT INTO article_reads (user_id, article_id)
		VALUES ($1, $2)
		RETURNING ` + articleReadColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute mark article read query for article_id=%d: %w", articleID, err)
	}

	read, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ArticleRead])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:article_reads for article_id=%d: %w", articleID, err)
	}

	return &read, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
