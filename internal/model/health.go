package model

import "time"

// SemenReport is a single lab or at-home semen analysis.
// Motility and morphology are percentages.
type SemenReport struct {
	Base
	UserID     int64   `json:"userId" db:"user_id"`
	Count      float64 `json:"count" db:"count"`
	Motility   float64 `json:"motility" db:"motility"`
	Morphology float64 `json:"morphology" db:"morphology"`
	Notes      *string `json:"notes" db:"notes"`
}

// SemenMetrics is the latest report reduced to its three measurements.
type SemenMetrics struct {
	Count      float64 `json:"count" db:"count"`
	Motility   float64 `json:"motility" db:"motility"`
	Morphology float64 `json:"morphology" db:"morphology"`
}

type Habit struct {
	Base
	UserID      int64     `json:"userId" db:"user_id"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	DateLogged  time.Time `json:"dateLogged" db:"date_logged"`
}

type Reminder struct {
	Base
	UserID      int64     `json:"userId" db:"user_id"`
	Description string    `json:"description" db:"description"`
	DateTime    time.Time `json:"dateTime" db:"date_time"`
	Snoozed     bool      `json:"snoozed" db:"snoozed"`
}

// ReminderDelivery is what the reminder job needs to notify a user.
type ReminderDelivery struct {
	Reminder
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

type Goal struct {
	Base
	UserID      int64   `json:"userId" db:"user_id"`
	Metric      string  `json:"metric" db:"metric"`
	TargetValue float64 `json:"targetValue" db:"target_value"`
	Achieved    bool    `json:"achieved" db:"achieved"`
}

// Recommendation is an entry of the fixed recommendation list.
type Recommendation struct {
	ID          int64  `json:"id"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}
