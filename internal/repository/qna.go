package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type QnARepository struct {
	server *server.Server
}

func NewQnARepository(s *server.Server) *QnARepository {
	return &QnARepository{server: s}
}

const (
	qnaSessionColumns  = `id, user_id, title, description, scheduled_date, created_at, updated_at`
	qnaQuestionColumns = `id, session_id, user_id, question, created_at, updated_at`
)

func (r *QnARepository) ListSessions(ctx context.Context) ([]model.QnASession, error) {
	stmt := `SELECT ` + qnaSessionColumns + ` FROM qna_sessions ORDER BY scheduled_date ASC, id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list qna sessions query: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.QnASession])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:qna_sessions: %w", err)
	}

	return sessions, nil
}

type CreateSessionParams struct {
	UserID        int64
	Title         string
	Description   string
	ScheduledDate time.Time
}

func (r *QnARepository) CreateSession(ctx context.Context, p CreateSessionParams) (*model.QnASession, error) {
	stmt := `
		INSERT INTO qna_sessions (user_id, title, description, scheduled_date)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + qnaSessionColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, p.UserID, p.Title, p.Description, p.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create qna session query for user_id=%d: %w", p.UserID, err)
	}

	session, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.QnASession])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:qna_sessions for user_id=%d: %w", p.UserID, err)
	}

	return &session, nil
}

func (r *QnARepository) GetSession(ctx context.Context, sessionID int64) (*model.QnASession, error) {
	stmt := `SELECT ` + qnaSessionColumns + ` FROM qna_sessions WHERE id = $1`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get qna session query for session_id=%d: %w", sessionID, err)
	}

	session, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.QnASession])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:qna_sessions for session_id=%d: %w", sessionID, err)
	}

	return &session, nil
}

func (r *QnARepository) CreateQuestion(ctx context.Context, sessionID, userID int64, question string) (*model.QnAQuestion, error) {
	stmt := `
		INSERT INTO qna_questions (session_id, user_id, question)
		VALUES ($1, $2, $3)
		RETURNING ` + qnaQuestionColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, sessionID, userID, question)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create question query for session_id=%d: %w", sessionID, err)
	}

	q, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.QnAQuestion])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:qna_questions for session_id=%d: %w", sessionID, err)
	}

	return &q, nil
}

func (r *QnARepository) ListQuestions(ctx context.Context, sessionID int64) ([]model.QnAQuestion, error) {
	stmt := `SELECT ` + qnaQuestionColumns + ` FROM qna_questions WHERE session_id = $1 ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list questions query for session_id=%d: %w", sessionID, err)
	}

	questions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.QnAQuestion])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:qna_questions for session_id=%d: %w", sessionID, err)
	}

	return questions, nil
}
