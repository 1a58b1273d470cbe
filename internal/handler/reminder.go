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

type ReminderHandler struct {
	Handler
	reminders *service.ReminderService
}

func NewReminderHandler(s *server.Server, reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{Handler: NewHandler(s), reminders: reminders}
}

type CreateReminderRequest struct {
	UserID      int64      `param:"userId" json:"-"`
	DateTime    *time.Time `json:"dateTime" validate:"required"`
	Description string     `json:"description" validate:"required"`
}

func (r *CreateReminderRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateReminderRequest replaces the reminder; an absent snoozed means false.
type UpdateReminderRequest struct {
	UserID      int64      `param:"userId" json:"-"`
	ReminderID  int64      `param:"reminderId" json:"-"`
	Snoozed     bool       `json:"snoozed"`
	DateTime    *time.Time `json:"dateTime" validate:"required"`
	Description string     `json:"description" validate:"required"`
}

func (r *UpdateReminderRequest) Validate() error {
	return validation.Struct(r)
}

type ReminderPathRequest struct {
	UserID     int64 `param:"userId" json:"-"`
	ReminderID int64 `param:"reminderId" json:"-"`
}

func (r *ReminderPathRequest) Validate() error {
	return nil
}

func (h *ReminderHandler) CreateReminder(c echo.Context, req *CreateReminderRequest) (*model.Reminder, error) {
	return h.reminders.Create(c.Request().Context(), req.UserID, req.Description, *req.DateTime)
}

func (h *ReminderHandler) ListReminders(c echo.Context, req *UserPathRequest) ([]model.Reminder, error) {
	return h.reminders.List(c.Request().Context(), req.UserID)
}

func (h *ReminderHandler) UpdateReminder(c echo.Context, req *UpdateReminderRequest) (*model.Reminder, error) {
	return h.reminders.Update(c.Request().Context(), req.UserID, req.ReminderID, repository.UpdateReminderParams{
		Snoozed:     req.Snoozed,
		DateTime:    *req.DateTime,
		Description: req.Description,
	})
}

func (h *ReminderHandler) DeleteReminder(c echo.Context, req *ReminderPathRequest) (*model.Reminder, error) {
	return h.reminders.Delete(c.Request().Context(), req.UserID, req.ReminderID)
}
