package service

import (
	"context"
	"fmt"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
)

type QnAStore interface {
	ListSessions(ctx context.Context) ([]model.QnASession, error)
	CreateSession(ctx context.Context, p repository.CreateSessionParams) (*model.QnASession, error)
	GetSession(ctx context.Context, sessionID int64) (*model.QnASession, error)
	CreateQuestion(ctx context.Context, sessionID, userID int64, question string) (*model.QnAQuestion, error)
	ListQuestions(ctx context.Context, sessionID int64) ([]model.QnAQuestion, error)
}

type QnAService struct {
	qna   QnAStore
	users UserChecker
}

func NewQnAService(qna QnAStore, users UserChecker) *QnAService {
	return &QnAService{qna: qna, users: users}
}

func (s *QnAService) ListSessions(ctx context.Context) ([]model.QnASession, error) {
	sessions, err := s.qna.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list qna sessions: %w", err)
	}
	return orEmpty(sessions), nil
}

func (s *QnAService) CreateSession(ctx context.Context, p repository.CreateSessionParams) (*model.QnASession, error) {
	if err := requireUser(ctx, s.users, p.UserID); err != nil {
		return nil, err
	}

	session, err := s.qna.CreateSession(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create qna session: %w", err)
	}
	return session, nil
}

// SubmitQuestion attaches a question to an existing session. Without an
// explicit asker the question is attributed to the session's host.
func (s *QnAService) SubmitQuestion(ctx context.Context, sessionID int64, userID *int64, question string) (*model.QnAQuestion, error) {
	session, err := s.qna.GetSession(ctx, sessionID)
	if err != nil {
		return nil, notFound(err, "Session not found", "get qna session")
	}

	asker := session.UserID
	if userID != nil {
		asker = *userID
	}

	q, err := s.qna.CreateQuestion(ctx, sessionID, asker, question)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

func (s *QnAService) ListQuestions(ctx context.Context, sessionID int64) ([]model.QnAQuestion, error) {
	if _, err := s.qna.GetSession(ctx, sessionID); err != nil {
		return nil, notFound(err, "Session not found", "get qna session")
	}

	questions, err := s.qna.ListQuestions(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return orEmpty(questions), nil
}
