package service

import (
	"context"
	"fmt"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
)

type SemenReportStore interface {
	Create(ctx context.Context, p repository.CreateSemenReportParams) (*model.SemenReport, error)
	ListByUser(ctx context.Context, userID int64) ([]model.SemenReport, error)
	Latest(ctx context.Context, userID int64) (*model.SemenMetrics, error)
}

type SemenReportService struct {
	reports SemenReportStore
	users   UserChecker
}

func NewSemenReportService(reports SemenReportStore, users UserChecker) *SemenReportService {
	return &SemenReportService{reports: reports, users: users}
}

func (s *SemenReportService) Create(ctx context.Context, p repository.CreateSemenReportParams) (*model.SemenReport, error) {
	if err := requireUser(ctx, s.users, p.UserID); err != nil {
		return nil, err
	}

	report, err := s.reports.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create semen report: %w", err)
	}
	return report, nil
}

func (s *SemenReportService) List(ctx context.Context, userID int64) ([]model.SemenReport, error) {
	reports, err := s.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list semen reports: %w", err)
	}
	return orEmpty(reports), nil
}

// Metrics returns the measurements of the user's latest report.
func (s *SemenReportService) Metrics(ctx context.Context, userID int64) (*model.SemenMetrics, error) {
	metrics, err := s.reports.Latest(ctx, userID)
	if err != nil {
		return nil, notFound(err, "No semen health metrics found", "latest semen report")
	}
	return metrics, nil
}

func (s *SemenReportService) Trends(ctx context.Context, userID int64) (*model.Trends, error) {
	reports, err := s.reports.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list semen reports for trends: %w", err)
	}

	trends := ComputeTrends(reports)
	return &trends, nil
}
