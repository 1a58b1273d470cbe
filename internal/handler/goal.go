package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/internal/validation"
)

// GoalHandler serves /api/users/:userId/goals. Updates and deletes are
// scoped to goals owned by the path user.
type GoalHandler struct {
	Handler
	goals *service.GoalService
}

func NewGoalHandler(s *server.Server, goals *service.GoalService) *GoalHandler {
	return &GoalHandler{Handler: NewHandler(s), goals: goals}
}

type CreateGoalRequest struct {
	UserID      int64    `param:"userId" json:"-"`
	Metric      string   `json:"metric" validate:"required,max=100"`
	TargetValue *float64 `json:"targetValue" validate:"required"`
}

func (r *CreateGoalRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateGoalRequest struct {
	UserID      int64    `param:"userId" json:"-"`
	GoalID      int64    `param:"goalId" json:"-"`
	Metric      string   `json:"metric" validate:"required,max=100"`
	TargetValue *float64 `json:"targetValue" validate:"required"`
	Achieved    *bool    `json:"achieved"`
}

func (r *UpdateGoalRequest) Validate() error {
	return validation.Struct(r)
}

type GoalPathRequest struct {
	UserID int64 `param:"userId" json:"-"`
	GoalID int64 `param:"goalId" json:"-"`
}

func (r *GoalPathRequest) Validate() error {
	return nil
}

func (h *GoalHandler) CreateGoal(c echo.Context, req *CreateGoalRequest) (*model.Goal, error) {
	return h.goals.Create(c.Request().Context(), req.UserID, req.Metric, *req.TargetValue)
}

func (h *GoalHandler) ListGoals(c echo.Context, req *UserPathRequest) ([]model.Goal, error) {
	return h.goals.List(c.Request().Context(), req.UserID)
}

func (h *GoalHandler) UpdateGoal(c echo.Context, req *UpdateGoalRequest) (*model.Goal, error) {
	return h.goals.Update(c.Request().Context(), req.UserID, req.GoalID, repository.UpdateGoalParams{
		Metric:      req.Metric,
		TargetValue: *req.TargetValue,
		Achieved:    req.Achieved,
	})
}

func (h *GoalHandler) DeleteGoal(c echo.Context, req *GoalPathRequest) (*model.Goal, error) {
	return h.goals.Delete(c.Request().Context(), req.UserID, req.GoalID)
}
