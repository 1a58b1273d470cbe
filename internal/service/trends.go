package service

import (
	"github.com/virilis/backend/internal/model"
)

const trendDateLayout = "2006-01-02"

// trendMetrics lists the tracked series in output order.
var trendMetrics = []struct {
	name  string
	value func(model.SemenReport) float64
}{
	{name: "count", value: func(r model.SemenReport) float64 { return r.Count }},
	{name: "motility", value: func(r model.SemenReport) float64 { return r.Motility }},
}

// ComputeTrends maps reports onto one series per tracked metric.
// Points keep the order of reports; dates are the UTC day of CreatedAt.
func ComputeTrends(reports []model.SemenReport) model.Trends {
	metrics := make([]model.MetricTrend, 0, len(trendMetrics))

	for _, m := range trendMetrics {
		points := make([]model.TrendPoint, 0, len(reports))
		for _, r := range reports {
			points = append(points, model.TrendPoint{
				Date:  r.CreatedAt.UTC().Format(trendDateLayout),
				Value: m.value(r),
			})
		}
		metrics = append(metrics, model.MetricTrend{Metric: m.name, DataPoints: points})
	}

	return model.Trends{Metrics: metrics}
}
