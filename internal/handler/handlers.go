package handler

import (
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
	"github.com/virilis/backend/static"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health         *HealthHandler
	OpenAPI        *OpenAPIHandler
	User           *UserHandler
	SemenReport    *SemenReportHandler
	Habit          *HabitHandler
	Recommendation *RecommendationHandler
	Reminder       *ReminderHandler
	Goal           *GoalHandler
	Article        *ArticleHandler
	Forum          *ForumHandler
	QnA            *QnAHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:         NewHealthHandler(s),
		OpenAPI:        NewOpenAPIHandler(s, static.Files),
		User:           NewUserHandler(s, services.User),
		SemenReport:    NewSemenReportHandler(s, services.SemenReport),
		Habit:          NewHabitHandler(s, services.Habit),
		Recommendation: NewRecommendationHandler(s, services.Recommendation),
		Reminder:       NewReminderHandler(s, services.Reminder),
		Goal:           NewGoalHandler(s, services.Goal),
		Article:        NewArticleHandler(s, services.Article),
		Forum:          NewForumHandler(s, services.Forum),
		QnA:            NewQnAHandler(s, services.QnA),
	}
}
