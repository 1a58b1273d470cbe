// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/handler"
	"github.com/virilis/backend/internal/middleware"
	"github.com/virilis/backend/internal/server"
)

// NewRouter builds the Echo instance with global middleware, system routes
// and the /api routes.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.IPExtractor = middleware.ClientIPExtractor(s.Config.Server.TrustedProxies)

	// Order matters: the request id feeds tracing and the context logger,
	// which the request logger then reads.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Middleware(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, middlewares)

	api := router.Group("/api", middlewares.RateLimit.Limit())
	registerUserRoutes(api, h)
	registerContentRoutes(api, h)

	return router
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers) {
	api.POST("/users", handler.Handle(h.User.CreateUser, http.StatusCreated, &handler.CreateUserRequest{}, "User created successfully!"))

	user := api.Group("/users/:userId")
	user.GET("", handler.Handle(h.User.GetUser, http.StatusOK, &handler.UserPathRequest{}, "User fetched successfully!"))

	user.GET("/semen-reports", handler.Handle(h.SemenReport.ListReports, http.StatusOK, &handler.UserPathRequest{}, "Semen reports fetched successfully!"))
	user.POST("/semen-reports", handler.Handle(h.SemenReport.CreateReport, http.StatusCreated, &handler.CreateSemenReportRequest{}, "Semen report logged successfully!"))
	user.GET("/semenMetrics", handler.Handle(h.SemenReport.GetMetrics, http.StatusOK, &handler.UserPathRequest{}, "Semen health metrics fetched successfully!"))
	user.GET("/semenReports/trends", handler.Handle(h.SemenReport.GetTrends, http.StatusOK, &handler.UserPathRequest{}, "Trends fetched successfully!"))

	user.GET("/habits", handler.Handle(h.Habit.ListHabits, http.StatusOK, &handler.UserPathRequest{}, "Habits fetched successfully!"))
	user.POST("/habits", handler.Handle(h.Habit.CreateHabit, http.StatusCreated, &handler.CreateHabitRequest{}, "Habit logged successfully!"))

	user.GET("/recommendations", handler.Handle(h.Recommendation.ListRecommendations, http.StatusOK, &handler.UserPathRequest{}, "Recommendations fetched successfully!"))
	complete := handler.Handle(h.Recommendation.CompleteRecommendation, http.StatusOK, &handler.CompleteRecommendationRequest{}, "Recommendation marked as completed!")
	user.POST("/recommendations/:recommendationId/complete", complete)
	user.PATCH("/recommendations/:recommendationId/complete", complete)

	user.GET("/reminders", handler.Handle(h.Reminder.ListReminders, http.StatusOK, &handler.UserPathRequest{}, "Reminders fetched successfully!"))
	user.POST("/reminders", handler.Handle(h.Reminder.CreateReminder, http.StatusCreated, &handler.CreateReminderRequest{}, "Reminder created successfully!"))
	user.PUT("/reminders/:reminderId", handler.Handle(h.Reminder.UpdateReminder, http.StatusOK, &handler.UpdateReminderRequest{}, "Reminder updated successfully!"))
	user.DELETE("/reminders/:reminderId", handler.Handle(h.Reminder.DeleteReminder, http.StatusOK, &handler.ReminderPathRequest{}, "Reminder deleted successfully!"))

	user.GET("/goals", handler.Handle(h.Goal.ListGoals, http.StatusOK, &handler.UserPathRequest{}, "Goals fetched successfully!"))
	user.POST("/goals", handler.Handle(h.Goal.CreateGoal, http.StatusCreated, &handler.CreateGoalRequest{}, "Goal created successfully!"))
	user.PATCH("/goals/:goalId", handler.Handle(h.Goal.UpdateGoal, http.StatusOK, &handler.UpdateGoalRequest{}, "Goal updated successfully!"))
	user.DELETE("/goals/:goalId", handler.Handle(h.Goal.DeleteGoal, http.StatusOK, &handler.GoalPathRequest{}, "Goal deleted successfully!"))
}

// registerContentRoutes covers the routes not scoped to a user path.
func registerContentRoutes(api *echo.Group, h *handler.Handlers) {
	api.GET("/articles", handler.Handle(h.Article.ListArticles, http.StatusOK, &handler.ListArticlesRequest{}, "Articles fetched successfully!"))
	api.POST("/articles/read", handler.Handle(h.Article.MarkRead, http.StatusCreated, &handler.MarkArticleReadRequest{}, "Article marked as read successfully!"))

	forums := api.Group("/forums/posts")
	forums.GET("", handler.Handle(h.Forum.ListPosts, http.StatusOK, &handler.EmptyRequest{}, "Forum posts fetched successfully!"))
	forums.POST("", handler.Handle(h.Forum.CreatePost, http.StatusCreated, &handler.CreatePostRequest{}, "Forum post created successfully!"))
	forums.GET("/:postId", handler.Handle(h.Forum.GetPost, http.StatusOK, &handler.PostPathRequest{}, "Forum post retrieved successfully!"))
	forums.POST("/:postId/replies/:userId", handler.Handle(h.Forum.CreateReply, http.StatusCreated, &handler.CreateReplyRequest{}, "Reply created successfully!"))

	sessions := api.Group("/qna/sessions")
	sessions.GET("", handler.Handle(h.QnA.ListSessions, http.StatusOK, &handler.EmptyRequest{}, "Q&A sessions retrieved successfully!"))
	sessions.POST("", handler.Handle(h.QnA.CreateSession, http.StatusCreated, &handler.CreateSessionRequest{}, "Q&A session created successfully!"))
	sessions.GET("/:sessionId/questions", handler.Handle(h.QnA.ListQuestions, http.StatusOK, &handler.SessionPathRequest{}, "Questions fetched successfully!"))
	sessions.POST("/:sessionId/questions", handler.Handle(h.QnA.SubmitQuestion, http.StatusCreated, &handler.SubmitQuestionRequest{}, "Question submitted successfully!"))
}
