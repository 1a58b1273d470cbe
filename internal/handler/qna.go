package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/internal/validation"
)

type QnAHandler struct {
	Handler
	qna *service.QnAService
}

func NewQnAHandler(s *server.Server, qna *service.QnAService) *QnAHandler {
	return &QnAHandler{Handler: NewHandler(s), qna: qna}
}

type CreateSessionRequest struct {
	UserID        int64      `json:"userId" validate:"required"`
	Title         string     `json:"title" validate:"required,max=255"`
	Description   string     `json:"description"`
	ScheduledDate *time.Time `json:"scheduledDate" validate:"required"`
}

func (r *CreateSessionRequest) Validate() error {
	return validation.Struct(r)
}

// SubmitQuestionRequest falls back to the session host when UserID is absent.
type SubmitQuestionRequest struct {
	SessionID int64  `param:"sessionId" json:"-"`
	UserID    *int64 `json:"userId"`
	Question  string `json:"question" validate:"required"`
}

func (r *SubmitQuestionRequest) Validate() error {
	return validation.Struct(r)
}

func (r *SubmitQuestionRequest) RequiredMessage() string { return "Question is required" }

type SessionPathRequest struct {
	SessionID int64 `param:"sessionId" json:"-"`
}

func (r *SessionPathRequest) Validate() error {
	return nil
}

func (h *QnAHandler) ListSessions(c echo.Context, _ *EmptyRequest) ([]model.QnASession, error) {
	return h.qna.ListSessions(c.Request().Context())
}

func (h *QnAHandler) CreateSession(c echo.Context, req *CreateSessionRequest) (*model.QnASession, error) {
	return h.qna.CreateSession(c.Request().Context(), repository.CreateSessionParams{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: *req.ScheduledDate,
	})
}

func (h *QnAHandler) SubmitQuestion(c echo.Context, req *SubmitQuestionRequest) (*model.QnAQuestion, error) {
	return h.qna.SubmitQuestion(c.Request().Context(), req.SessionID, req.UserID, req.Question)
}

func (h *QnAHandler) ListQuestions(c echo.Context, req *SessionPathRequest) ([]model.QnAQuestion, error) {
	return h.qna.ListQuestions(c.Request().Context(), req.SessionID)
}
