package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/server"
)

type SemenReportRepository struct {
	server *server.Server
}

func NewSemenReportRepository(s *server.Server) *SemenReportRepository {
	return &SemenReportRepository{server: s}
}

const semenReportColumns = `id, user_id, count, motility, morphology, notes, created_at, updated_at`

type CreateSemenReportParams struct {
	UserID     int64
	Count      float64
	Motility   float64
	Morphology float64
	Notes      *string
}

func (r *SemenReportRepository) Create(ctx context.Context, p CreateSemenReportParams) (*model.SemenReport, error) {
	stmt := `
		INSERT INTO semen_reports (user_id, count, motility, morphology, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + semenReportColumns

	rows, err := r.server.DB.Pool.Query(ctx, stmt, p.UserID, p.Count, p.Motility, p.Morphology, p.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create semen report query for user_id=%d: %w", p.UserID, err)
	}

	report, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SemenReport])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:semen_reports for user_id=%d: %w", p.UserID, err)
	}

	return &report, nil
}

// ListByUser returns reports in insertion order.
func (r *SemenReportRepository) ListByUser(ctx context.Context, userID int64) ([]model.SemenReport, error) {
	stmt := `SELECT ` + semenReportColumns + ` FROM semen_reports WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list semen reports query for user_id=%d: %w", userID, err)
	}

	reports, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SemenReport])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:semen_reports for user_id=%d: %w", userID, err)
	}

	return reports, nil
}

// Latest returns the most recent report's measurements.
func (r *SemenReportRepository) Latest(ctx context.Context, userID int64) (*model.SemenMetrics, error) {
	stmt := `
		SELECT count, motility, morphology
		FROM semen_reports
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute latest semen report query for user_id=%d: %w", userID, err)
	}

	metrics, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SemenMetrics])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:semen_reports for user_id=%d: %w", userID, err)
	}

	return &metrics, nil
}
