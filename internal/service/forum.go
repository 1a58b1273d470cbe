package service

import (
	"context"
	"fmt"

	"github.com/virilis/backend/internal/errs"
	"github.com/virilis/backend/internal/model"
)

type ForumStore interface {
	CreatePost(ctx context.Context, userID int64, content string) (*model.ForumPost, error)
	ListPosts(ctx context.Context) ([]model.ForumPost, error)
	GetPost(ctx context.Context, postID int64) (*model.ForumPost, error)
	PostExists(ctx context.Context, postID int64) (bool, error)
	ListReplies(ctx context.Context, postID int64) ([]model.ForumReply, error)
	CreateReply(ctx context.Context, postID, userID int64, content string) (*model.ForumReply, error)
}

type ForumService struct {
	forum           ForumStore
	anonymousUserID int64
}

func NewForumService(forum ForumStore, anonymousUserID int64) *ForumService {
	return &ForumService{forum: forum, anonymousUserID: anonymousUserID}
}

// CreatePost stores a post. Posts without an author belong to the anonymous user.
func (s *ForumService) CreatePost(ctx context.Context, userID *int64, content string) (*model.ForumPost, error) {
	author := s.anonymousUserID
	if userID != nil {
		author = *userID
	}

	post, err := s.forum.CreatePost(ctx, author, content)
	if err != nil {
		return nil, fmt.Errorf("create forum post: %w", err)
	}
	return post, nil
}

func (s *ForumService) ListPosts(ctx context.Context) ([]model.ForumPost, error) {
	posts, err := s.forum.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list forum posts: %w", err)
	}
	return orEmpty(posts), nil
}

// GetPost returns the post with all of its replies.
func (s *ForumService) GetPost(ctx context.Context, postID int64) (*model.ForumThread, error) {
	post, err := s.forum.GetPost(ctx, postID)
	if err != nil {
		return nil, notFound(err, "Forum post not found", "get forum post")
	}

	replies, err := s.forum.ListReplies(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	return &model.ForumThread{ForumPost: *post, Replies: orEmpty(replies)}, nil
}

func (s *ForumService) CreateReply(ctx context.Context, postID, userID int64, content string) (*model.ForumReply, error) {
	exists, err := s.forum.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check forum post: %w", err)
	}
	if !exists {
		return nil, errs.NewNotFoundError("Post not found", true, nil)
	}

	reply, err := s.forum.CreateReply(ctx, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	return reply, nil
}
