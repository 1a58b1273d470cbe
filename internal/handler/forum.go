package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/internal/validation"
)

type ForumHandler struct {
	Handler
	forum *service.ForumService
}

func NewForumHandler(s *server.Server, forum *service.ForumService) *ForumHandler {
	return &ForumHandler{Handler: NewHandler(s), forum: forum}
}

// CreatePostRequest posts anonymously when UserID is absent.
type CreatePostRequest struct {
	UserID  *int64 `json:"userId"`
	Content string `json:"content" validate:"required"`
}

func (r *CreatePostRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreatePostRequest) RequiredMessage() string { return "Content is required" }

type PostPathRequest struct {
	PostID int64 `param:"postId" json:"-"`
}

func (r *PostPathRequest) Validate() error {
	return nil
}

type CreateReplyRequest struct {
	PostID  int64  `param:"postId" json:"-"`
	UserID  int64  `param:"userId" json:"-"`
	Content string `json:"content" validate:"required"`
}

func (r *CreateReplyRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateReplyRequest) RequiredMessage() string { return "Content is required" }

func (h *ForumHandler) ListPosts(c echo.Context, _ *EmptyRequest) ([]model.ForumPost, error) {
	return h.forum.ListPosts(c.Request().Context())
}

func (h *ForumHandler) CreatePost(c echo.Context, req *CreatePostRequest) (*model.ForumPost, error) {
	return h.forum.CreatePost(c.Request().Context(), req.UserID, req.Content)
}

func (h *ForumHandler) GetPost(c echo.Context, req *PostPathRequest) (*model.ForumThread, error) {
	return h.forum.GetPost(c.Request().Context(), req.PostID)
}

func (h *ForumHandler) CreateReply(c echo.Context, req *CreateReplyRequest) (*model.ForumReply, error) {
	return h.forum.CreateReply(c.Request().Context(), req.PostID, req.UserID, req.Content)
}
