package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/virilis/backend/internal/model"
)

const (
	TaskWelcome     = "email:welcome"
	TaskReminderDue = "reminder:due"

	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// ReminderDuePayload identifies one scheduled firing of a reminder.
// DateTime lets the handler drop firings made stale by a later edit.
type ReminderDuePayload struct {
	ReminderID int64     `json:"reminder_id"`
	DateTime   time.Time `json:"date_time"`
}

func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Name: name})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}

func NewReminderDueTask(reminderID int64, at time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(ReminderDuePayload{ReminderID: reminderID, DateTime: at.UTC()})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReminderDue,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
		asynq.ProcessAt(at),
		asynq.TaskID(reminderTaskID(reminderID, at)),
	), nil
}

// reminderTaskID is unique per reminder and firing time, to the microsecond
// precision of timestamptz.
func reminderTaskID(reminderID int64, at time.Time) string {
	return fmt.Sprintf("reminder:%d:%d", reminderID, at.UnixMicro())
}

// EnqueueWelcomeEmail queues the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, name string) error {
	task, err := NewWelcomeEmailTask(to, name)
	if err != nil {
		return fmt.Errorf("build welcome task: %w", err)
	}

	if _, err := j.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue welcome task: %w", err)
	}
	return nil
}

// ScheduleReminder queues a notification for when reminder is due.
// Snoozed reminders are not scheduled. Re-scheduling the same firing is a no-op.
func (j *JobService) ScheduleReminder(ctx context.Context, reminder *model.Reminder) error {
	if reminder.Snoozed {
		return nil
	}

	task, err := NewReminderDueTask(reminder.ID, reminder.DateTime)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	_, err = j.client.EnqueueContext(ctx, task)
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return fmt.Errorf("enqueue reminder task: %w", err)
	}
	return nil
}
