package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().Str("type", TaskWelcome).Str("to", p.To).Logger()
	logger.Info().Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.Name); err != nil {
		logger.Error().Err(err).Msg("Failed to send welcome email")
		return err
	}

	logger.Info().Msg("Successfully sent welcome email")
	return nil
}

func (j *JobService) handleReminderDueTask(ctx context.Context, t *asynq.Task) error {
	var p ReminderDuePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal reminder payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().Str("type", TaskReminderDue).Int64("reminder_id", p.ReminderID).Logger()

	delivery, err := j.reminders.GetDelivery(ctx, p.ReminderID)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Info().Msg("reminder deleted, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load reminder %d: %w", p.ReminderID, err)
	}

	switch {
	case delivery.Snoozed:
		logger.Info().Msg("reminder snoozed, skipping")
		return nil
	case !delivery.DateTime.Equal(p.DateTime):
		logger.Info().Time("scheduled_for", p.DateTime).Time("date_time", delivery.DateTime).
			Msg("reminder rescheduled, skipping stale firing")
		return nil
	}

	if err := j.mailer.SendReminderEmail(ctx, delivery.UserEmail, delivery.UserName, delivery.Description, delivery.DateTime); err != nil {
		logger.Error().Err(err).Msg("Failed to send reminder email")
		return err
	}

	logger.Info().Msg("Successfully sent reminder email")
	return nil
}
