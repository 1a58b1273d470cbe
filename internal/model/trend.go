package model

// TrendPoint is one day-granularity observation. Date is YYYY-MM-DD (UTC).
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type MetricTrend struct {
	Metric     string       `json:"metric"`
	DataPoints []TrendPoint `json:"dataPoints"`
}

type Trends struct {
	Metrics []MetricTrend `json:"metrics"`
}
