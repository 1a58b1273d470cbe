package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/internal/validation"
)

type ArticleHandler struct {
	Handler
	articles *service.ArticleService
}

func NewArticleHandler(s *server.Server, articles *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{Handler: NewHandler(s), articles: articles}
}

type ListArticlesRequest struct {
	Search string `query:"search" validate:"max=200"`
}

func (r *ListArticlesRequest) Validate() error {
	return validation.Struct(r)
}

// MarkArticleReadRequest rejects zero ids as missing.
type MarkArticleReadRequest struct {
	UserID    int64 `json:"userId" validate:"required"`
	ArticleID int64 `json:"articleId" validate:"required"`
}

func (r *MarkArticleReadRequest) Validate() error {
	return validation.Struct(r)
}

func (h *ArticleHandler) ListArticles(c echo.Context, req *ListArticlesRequest) ([]model.Article, error) {
	return h.articles.List(c.Request().Context(), req.Search)
}

func (h *ArticleHandler) MarkRead(c echo.Context, req *MarkArticleReadRequest) (*model.ArticleRead, error) {
	return h.articles.MarkRead(c.Request().Context(), req.UserID, req.ArticleID)
}
