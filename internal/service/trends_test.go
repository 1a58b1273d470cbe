package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virilis/backend/internal/model"
)

func report(count, motility float64, createdAt time.Time) model.SemenReport {
	return model.SemenReport{
		Base:     model.Base{CreatedAt: createdAt},
		Count:    count,
		Motility: motility,
	}
}

func TestComputeTrends(t *testing.T) {
	d1 := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 8, 23, 59, 0, 0, time.UTC)

	t.Run("two reports give two points per metric in input order", func(t *testing.T) {
		trends := ComputeTrends([]model.SemenReport{report(10, 50, d1), report(20, 60, d2)})

		assert.Equal(t, model.Trends{Metrics: []model.MetricTrend{
			{Metric: "count", DataPoints: []model.TrendPoint{
				{Date: "2024-05-01", Value: 10},
				{Date: "2024-05-08", Value: 20},
			}},
			{Metric: "motility", DataPoints: []model.TrendPoint{
				{Date: "2024-05-01", Value: 50},
				{Date: "2024-05-08", Value: 60},
			}},
		}}, trends)
	})

	t.Run("order is not changed", func(t *testing.T) {
		trends := ComputeTrends([]model.SemenReport{report(20, 60, d2), report(10, 50, d1)})

		require.Len(t, trends.Metrics[0].DataPoints, 2)
		assert.Equal(t, "2024-05-08", trends.Metrics[0].DataPoints[0].Date)
	})

	t.Run("dates are UTC days", func(t *testing.T) {
		tz := time.FixedZone("UTC+9", 9*60*60)
		local := time.Date(2024, 5, 2, 3, 0, 0, 0, tz)

		trends := ComputeTrends([]model.SemenReport{report(1, 1, local)})
		assert.Equal(t, "2024-05-01", trends.Metrics[0].DataPoints[0].Date)
	})

	t.Run("no reports", func(t *testing.T) {
		trends := ComputeTrends(nil)

		require.Len(t, trends.Metrics, 2)
		for _, m := range trends.Metrics {
			assert.NotNil(t, m.DataPoints)
			assert.Empty(t, m.DataPoints)
		}
	})
}
