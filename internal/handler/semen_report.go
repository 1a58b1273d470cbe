package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/internal/validation"
)

type SemenReportHandler struct {
	Handler
	reports *service.SemenReportService
}

func NewSemenReportHandler(s *server.Server, reports *service.SemenReportService) *SemenReportHandler {
	return &SemenReportHandler{Handler: NewHandler(s), reports: reports}
}

// CreateSemenReportRequest uses pointers so an explicit 0 counts as present.
type CreateSemenReportRequest struct {
	UserID     int64    `param:"userId" json:"-"`
	Count      *float64 `json:"count" validate:"required,gte=0"`
	Motility   *float64 `json:"motility" validate:"required,gte=0,lte=100"`
	Morphology *float64 `json:"morphology" validate:"required,gte=0,lte=100"`
	Notes      *string  `json:"notes"`
}

func (r *CreateSemenReportRequest) Validate() error {
	return validation.Struct(r)
}

func (h *SemenReportHandler) CreateReport(c echo.Context, req *CreateSemenReportRequest) (*model.SemenReport, error) {
	return h.reports.Create(c.Request().Context(), repository.CreateSemenReportParams{
		UserID:     req.UserID,
		Count:      *req.Count,
		Motility:   *req.Motility,
		Morphology: *req.Morphology,
		Notes:      req.Notes,
	})
}

func (h *SemenReportHandler) ListReports(c echo.Context, req *UserPathRequest) ([]model.SemenReport, error) {
	return h.reports.List(c.Request().Context(), req.UserID)
}

// GetMetrics returns the measurements of the most recent report.
func (h *SemenReportHandler) GetMetrics(c echo.Context, req *UserPathRequest) (*model.SemenMetrics, error) {
	return h.reports.Metrics(c.Request().Context(), req.UserID)
}

func (h *SemenReportHandler) GetTrends(c echo.Context, req *UserPathRequest) (*model.Trends, error) {
	return h.reports.Trends(c.Request().Context(), req.UserID)
}
