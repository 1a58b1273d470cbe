package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type ReminderRepository struct {
	server *server.Server
}

func NewReminderRepository(s *server.Server) *ReminderRepository {
	return &ReminderRepository{server: s}
}

const reminderColumns = `id, user_id, description, date_time, snoozed, created_at, updated_at`

// Reminder writes are scoped to the owner: $1 is the reminder id, $2 the user id.
const (
	updateReminderForUserSQL = `
		UPDATE reminders
		SET snoozed = $3, date_time = $4, description = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + reminderColumns

	deleteReminderForUserSQL = `
		DELETE FROM reminders
		WHERE id = $1 AND user_id = $2
		RETURNING ` + reminderColumns
)

func (r *ReminderRepository) Create(ctx context.Context, userID int64, description string, dateTime time.Time) (*model.Reminder, error) {
	stmt := `
		INSERT INTO reminders (user_id, description, date_time)
		VALUES ($1, $2, $3)
		RETURNING ` + reminderColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID, description, dateTime)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create reminder query for user_id=%d: %w", userID, err)
	}

	reminder, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Reminder])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:reminders for user_id=%d: %w", userID, err)
	}

	return &reminder, nil
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Reminder, error) {
	stmt := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list reminders query for user_id=%d: %w", userID, err)
	}

	reminders, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Reminder])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:reminders for user_id=%d: %w", userID, err)
	}

	return reminders, nil
}

type UpdateReminderParams struct {
	Snoozed     bool
	DateTime    time.Time
	Description string
}

// UpdateForUser overwrites a reminder owned by userID.
func (r *ReminderRepository) UpdateForUser(ctx context.Context, userID, reminderID int64, p UpdateReminderParams) (*model.Reminder, error) {
	rows, err := r.server.DB.Pool.Query(ctx, updateReminderForUserSQL, reminderID, userID, p.Snoozed, p.DateTime, p.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to execute update reminder query for reminder_id=%d: %w", reminderID, err)
	}

	reminder, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Reminder])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:reminders for reminder_id=%d: %w", reminderID, err)
	}

	return &reminder, nil
}

// DeleteForUser removes a reminder owned by userID and returns the deleted row.
func (r *ReminderRepository) DeleteForUser(ctx context.Context, userID, reminderID int64) (*model.Reminder, error) {
	rows, err := r.server.DB.Pool.Query(ctx, deleteReminderForUserSQL, reminderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute delete reminder query for reminder_id=%d: %w", reminderID, err)
	}

	reminder, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Reminder])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:reminders for reminder_id=%d: %w", reminderID, err)
	}

	return &reminder, nil
}

// GetDelivery loads a reminder joined with its owner's contact details.
func (r *ReminderRepository) GetDelivery(ctx context.Context, reminderID int64) (*model.ReminderDelivery, error) {
	stmt := `
		SELECT r.id, r.user_id, r.description, r.date_time, r.snoozed, r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email
		FROM reminders r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, reminderID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute reminder delivery query for reminder_id=%d: %w", reminderID, err)
	}

	delivery, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ReminderDelivery])
	if err != nil {
		return nil, fmt.Errorf("failed to collect reminder delivery for reminder_id=%d: %w", reminderID, err)
	}

	return &delivery, nil
}
