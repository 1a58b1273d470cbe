// Package service holds the business rules between handlers and repositories.
//
// Services depend on small store interfaces so they can be exercised
// without a database. A missing row (pgx.ErrNoRows) becomes a 404 with
// a message meant for end users.
package service

import (
	"context"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
	"github.com/virilis/backend/internal/server"
)

// JobEnqueuer schedules background work. A nil JobEnqueuer disables it.
type JobEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
	ScheduleReminder(ctx context.Context, reminder *model.Reminder) error
}

// UserChecker reports whether a user exists.
type UserChecker interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

type Services struct {
	User           *UserService
	SemenReport    *SemenReportService
	Habit          *HabitService
	Recommendation *RecommendationService
	Reminder       *ReminderService
	Goal           *GoalService
	Article        *ArticleService
	Forum          *ForumService
	QnA            *QnAService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var jobs JobEnqueuer
	if s.Job != nil {
		jobs = s.Job
	}

	return &Services{
		User:           NewUserService(repos.User, jobs),
		SemenReport:    NewSemenReportService(repos.SemenReport, repos.User),
		Habit:          NewHabitService(repos.Habit, repos.User),
		Recommendation: NewRecommendationService(repos.Habit, repos.User),
		Reminder:       NewReminderService(repos.Reminder, jobs),
		Goal:           NewGoalService(repos.Goal, repos.User),
		Article:        NewArticleService(repos.Article),
		Forum:          NewForumService(repos.Forum, s.Config.Forum.AnonymousUserID),
		QnA:            NewQnAService(repos.QnA, repos.User),
	}
}
