package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/internal/validation"
)

type HabitHandler struct {
	Handler
	habits *service.HabitService
}

func NewHabitHandler(s *server.Server, habits *service.HabitService) *HabitHandler {
	return &HabitHandler{Handler: NewHandler(s), habits: habits}
}

type CreateHabitRequest struct {
	UserID      int64  `param:"userId" json:"-"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
}

func (r *CreateHabitRequest) Validate() error {
	return validation.Struct(r)
}

func (h *HabitHandler) CreateHabit(c echo.Context, req *CreateHabitRequest) (*model.Habit, error) {
	return h.habits.Create(c.Request().Context(), req.UserID, req.Category, req.Description)
}

func (h *HabitHandler) ListHabits(c echo.Context, req *UserPathRequest) ([]model.Habit, error) {
	return h.habits.List(c.Request().Context(), req.UserID)
}
