// Package repository holds the SQL for every table.
//
// Repositories take the pool from *server.Server, use explicit column
// lists and return pgx.ErrNoRows (wrapped) when a row is missing.
package repository

import (
	"github.com/virilis/backend/internal/server"
)

type Repositories struct {
	User        *UserRepository
	SemenReport *SemenReportRepository
	Habit       *HabitRepository
	Reminder    *ReminderRepository
	Goal        *GoalRepository
	Article     *ArticleRepository
	Forum       *ForumRepository
	QnA         *QnARepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		User:        NewUserRepository(s),
		SemenReport: NewSemenReportRepository(s),
		Habit:       NewHabitRepository(s),
		Reminder:    NewReminderRepository(s),
		Goal:        NewGoalRepository(s),
		Article:     NewArticleRepository(s),
		Forum:       NewForumRepository(s),
		QnA:         NewQnARepository(s),
	}
}
