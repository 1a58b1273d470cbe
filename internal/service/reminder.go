package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
)

type ReminderStore interface {
	Create(ctx context.Context, userID int64, description string, dateTime time.Time) (*model.Reminder, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error)
	UpdateForUser(ctx context.Context, userID, reminderID int64, p repository.UpdateReminderParams) (*model.Reminder, error)
	DeleteForUser(ctx context.Context, userID, reminderID int64) (*model.Reminder, error)
}

type ReminderService struct {
	reminders ReminderStore
	jobs      JobEnqueuer
}

func NewReminderService(reminders ReminderStore, jobs JobEnqueuer) *ReminderService {
	return &ReminderService{reminders: reminders, jobs: jobs}
}

func (s *ReminderService) Create(ctx context.Context, userID int64, description string, dateTime time.Time) (*model.Reminder, error) {
	reminder, err := s.reminders.Create(ctx, userID, description, dateTime)
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}

	s.schedule(ctx, reminder)
	return reminder, nil
}

func (s *ReminderService) List(ctx context.Context, userID int64) ([]model.Reminder, error) {
	reminders, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return orEmpty(reminders), nil
}

func (s *ReminderService) Update(ctx context.Context, userID, reminderID int64, p repository.UpdateReminderParams) (*model.Reminder, error) {
	reminder, err := s.reminders.UpdateForUser(ctx, userID, reminderID, p)
	if err != nil {
		return nil, notFound(err, "Reminder not found", "update reminder")
	}

	s.schedule(ctx, reminder)
	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID int64) (*model.Reminder, error) {
	reminder, err := s.reminders.DeleteForUser(ctx, userID, reminderID)
	if err != nil {
		return nil, notFound(err, "Reminder not found", "delete reminder")
	}
	return reminder, nil
}

// schedule queues the due notification. Past or snoozed reminders are skipped;
// a queue failure is logged and never fails the request.
func (s *ReminderService) schedule(ctx context.Context, reminder *model.Reminder) {
	if s.jobs == nil || reminder.Snoozed || !reminder.DateTime.After(time.Now()) {
		return
	}

	if err := s.jobs.ScheduleReminder(ctx, reminder); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("reminder_id", reminder.ID).Msg("failed to schedule reminder")
	}
}
