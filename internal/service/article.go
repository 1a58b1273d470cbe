package service

import (
	"context"
	"fmt"

	"github.com/virilis/backend/internal/model"
)

type ArticleStore interface {
	List(ctx context.Context, search string) ([]model.Article, error)
	MarkRead(ctx context.Context, userID, articleID int64) (*model.ArticleRead, error)
}

type ArticleService struct {
	articles ArticleStore
}

func NewArticleService(articles ArticleStore) *ArticleService {
	return &ArticleService{articles: articles}
}

func (s *ArticleService) List(ctx context.Context, search string) ([]model.Article, error) {
	articles, err := s.articles.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return orEmpty(articles), nil
}

// MarkRead always records a new read, even for an article already read.
func (s *ArticleService) MarkRead(ctx context.Context, userID, articleID int64) (*model.ArticleRead, error) {
	read, err := s.articles.MarkRead(ctx, userID, articleID)
	if err != nil {
		return nil, fmt.Errorf("mark article read: %w", err)
	}
	return read, nil
}
