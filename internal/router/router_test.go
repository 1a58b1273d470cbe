package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virilis/backend/internal/config"
	"github.com/virilis/backend/internal/handler"
	"github.com/virilis/backend/internal/repository/memory"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/service"
)

type testApp struct {
	e         *echo.Echo
	db        *memory.DB
	anonymous int64
}

func newTestApp(t *testing.T, configure ...func(*config.Config)) *testApp {
	t.Helper()

	db := memory.New()
	anonymous := db.SeedUser("Anonymous", "anonymous@virilis.invalid")

	obs := config.DefaultObservabilityConfig()
	obs.HealthChecks.Enabled = false

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Forum:         config.ForumConfig{AnonymousUserID: anonymous.ID},
			Observability: obs,
		},
		Logger: &logger,
	}
	for _, fn := range configure {
		fn(s.Config)
	}

	services := &service.Services{
		User:           service.NewUserService(db.Users(), nil),
		SemenReport:    service.NewSemenReportService(db.SemenReports(), db.Users()),
		Habit:          service.NewHabitService(db.HabitStore(), db.Users()),
		Recommendation: service.NewRecommendationService(db.HabitStore(), db.Users()),
		Reminder:       service.NewReminderService(db.Reminders(), nil),
		Goal:           service.NewGoalService(db.Goals(), db.Users()),
		Article:        service.NewArticleService(db.Articles()),
		Forum:          service.NewForumService(db.Forum(), anonymous.ID),
		QnA:            service.NewQnAService(db.QnA(), db.Users()),
	}

	return &testApp{
		e:         NewRouter(s, handler.NewHandlers(s, services)),
		db:        db,
		anonymous: anonymous.ID,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestUserRoutes(t *testing.T) {
	app := newTestApp(t)

	status, env := app.do(t, http.MethodPost, "/api/users", map[string]string{"name": "John", "email": "john@example.com"})
	require.Equal(t, http.StatusCreated, status)
	user := decode[map[string]any](t, env.Data)
	assert.Equal(t, "John", user["name"])
	assert.NotZero(t, user["id"])
	assert.NotEmpty(t, user["createdAt"])

	status, env = app.do(t, http.MethodPost, "/api/users", map[string]string{"name": "Other", "email": "john@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "A User with this Email already exists", env.Message)

	status, env = app.do(t, http.MethodPost, "/api/users", map[string]string{"name": "No email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing required fields", env.Message)

	status, env = app.do(t, http.MethodGet, "/api/users/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", env.Message)
}

func TestNonNumericPathSegments(t *testing.T) {
	app := newTestApp(t)

	paths := []struct{ method, path, message string }{
		{http.MethodGet, "/api/users/abc/goals", "Invalid user ID"},
		{http.MethodDelete, "/api/users/1/goals/xyz", "Invalid user ID or goal ID"},
		{http.MethodPut, "/api/users/x/reminders/1", "Invalid user ID or reminder ID"},
		{http.MethodGet, "/api/forums/posts/first", "Invalid post ID"},
		{http.MethodPost, "/api/forums/posts/1/replies/me", "Invalid post ID or user ID"},
		{http.MethodGet, "/api/qna/sessions/s1/questions", "Invalid session ID"},
		{http.MethodPost, "/api/users/1/recommendations/r/complete", "Invalid user ID or recommendation ID"},
	}

	for _, p := range paths {
		t.Run(p.path, func(t *testing.T) {
			status, env := app.do(t, p.method, p.path, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, p.message, env.Message)
		})
	}
}

func TestGoalRoutes(t *testing.T) {
	app := newTestApp(t)
	owner := app.db.SeedUser("Owner", "owner@example.com")
	other := app.db.SeedUser("Other", "other@example.com")

	status, env := app.do(t, http.MethodPost, userPath(owner.ID, "/goals"), map[string]any{"metric": "count", "targetValue": 40})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Goal created successfully!", env.Message)
	goal := decode[map[string]any](t, env.Data)
	goalPath := userPath(owner.ID, "/goals/") + jsonID(goal["id"])

	status, _ = app.do(t, http.MethodPost, userPath(999, "/goals"), map[string]any{"metric": "count", "targetValue": 40})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = app.do(t, http.MethodPatch, userPath(other.ID, "/goals/")+jsonID(goal["id"]), map[string]any{"metric": "count", "targetValue": 50})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Goal not found or not updated", env.Message)

	status, env = app.do(t, http.MethodDelete, userPath(other.ID, "/goals/")+jsonID(goal["id"]), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Goal not found", env.Message)

	status, env = app.do(t, http.MethodPatch, goalPath, map[string]any{"metric": "count", "targetValue": 50, "achieved": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]any](t, env.Data)["achieved"])

	status, env = app.do(t, http.MethodDelete, goalPath, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, goal["id"], decode[map[string]any](t, env.Data)["id"])

	status, env = app.do(t, http.MethodGet, userPath(owner.ID, "/goals"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestSemenReportRoutes(t *testing.T) {
	app := newTestApp(t)
	user := app.db.SeedUser("John", "john@example.com")

	status, env := app.do(t, http.MethodGet, userPath(user.ID, "/semenMetrics"), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No semen health metrics found", env.Message)

	status, env = app.do(t, http.MethodPost, userPath(user.ID, "/semen-reports"), map[string]any{"count": 15})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", env.Message)

	for _, r := range []map[string]any{
		{"count": 10, "motility": 50, "morphology": 4},
		{"count": 20, "motility": 60, "morphology": 0, "notes": "after zinc"},
	} {
		status, _ = app.do(t, http.MethodPost, userPath(user.ID, "/semen-reports"), r)
		require.Equal(t, http.StatusCreated, status)
	}

	status, env = app.do(t, http.MethodGet, userPath(user.ID, "/semenReports/trends"), nil)
	require.Equal(t, http.StatusOK, status)
	trends := decode[struct {
		Metrics []struct {
			Metric     string `json:"metric"`
			DataPoints []struct {
				Value float64 `json:"value"`
			} `json:"dataPoints"`
		} `json:"metrics"`
	}](t, env.Data)
	require.Len(t, trends.Metrics, 2)
	assert.Equal(t, "count", trends.Metrics[0].Metric)
	require.Len(t, trends.Metrics[0].DataPoints, 2)
	assert.Equal(t, 10.0, trends.Metrics[0].DataPoints[0].Value)
	assert.Equal(t, 20.0, trends.Metrics[0].DataPoints[1].Value)
	assert.Equal(t, 60.0, trends.Metrics[1].DataPoints[1].Value)
}

func TestHabitRoutes(t *testing.T) {
	app := newTestApp(t)
	user := app.db.SeedUser("John", "john@example.com")

	status, env := app.do(t, http.MethodGet, userPath(user.ID, "/habits"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = app.do(t, http.MethodPost, userPath(user.ID, "/habits"), map[string]string{"category": "diet", "description": "Oranges"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Habit logged successfully!", env.Message)
	habit := decode[map[string]any](t, env.Data)
	assert.Equal(t, "diet", habit["category"])

	status, env = app.do(t, http.MethodPost, userPath(999, "/habits"), map[string]string{"category": "diet", "description": "Oranges"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", env.Message)

	status, env = app.do(t, http.MethodGet, userPath(user.ID, "/habits"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)
}

func TestRecommendationCompleteRoutes(t *testing.T) {
	app := newTestApp(t)
	user := app.db.SeedUser("John", "john@example.com")

	status, env := app.do(t, http.MethodGet, userPath(user.ID, "/recommendations"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 2)

	status, env = app.do(t, http.MethodPost, userPath(user.ID, "/recommendations/1/complete"), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Recommendation not found or not updated", env.Message)

	status, env = app.do(t, http.MethodPost, userPath(user.ID, "/habits"), map[string]string{"category": "diet", "description": "Oranges"})
	require.Equal(t, http.StatusCreated, status)
	habitID := jsonID(decode[map[string]any](t, env.Data)["id"])

	status, env = app.do(t, http.MethodPatch, userPath(user.ID, "/recommendations/"+habitID+"/complete"), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]any](t, env.Data)["completed"])
}

func TestReminderRoutes(t *testing.T) {
	app := newTestApp(t)
	owner := app.db.SeedUser("John", "john@example.com")
	other := app.db.SeedUser("Jane", "jane@example.com")
	at := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)

	status, env := app.do(t, http.MethodPost, userPath(owner.ID, "/reminders"), map[string]any{"dateTime": at, "description": "Take zinc"})
	require.Equal(t, http.StatusCreated, status)
	reminderID := jsonID(decode[map[string]any](t, env.Data)["id"])

	status, env = app.do(t, http.MethodPut, userPath(other.ID, "/reminders/"+reminderID), map[string]any{"dateTime": at, "description": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Reminder not found", env.Message)

	status, env = app.do(t, http.MethodPut, userPath(owner.ID, "/reminders/"+reminderID), map[string]any{"snoozed": true, "dateTime": at, "description": "Take zinc"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode[map[string]any](t, env.Data)["snoozed"])

	status, env = app.do(t, http.MethodDelete, userPath(owner.ID, "/reminders/"+reminderID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Take zinc", decode[map[string]any](t, env.Data)["description"])

	status, _ = app.do(t, http.MethodPost, userPath(999, "/reminders"), map[string]any{"dateTime": at, "description": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestArticleRoutes(t *testing.T) {
	app := newTestApp(t)
	user := app.db.SeedUser("John", "john@example.com")
	article := app.db.SeedArticle("Nutrition for Sperm Health", "Zinc", "nutrition")

	status, env := app.do(t, http.MethodGet, "/api/articles?search=nutri", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	body := map[string]int64{"userId": user.ID, "articleId": article.ID}
	for range 2 {
		status, env = app.do(t, http.MethodPost, "/api/articles/read", body)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "Article marked as read successfully!", env.Message)
	}
	assert.Len(t, app.db.ArticleReads(), 2)

	status, env = app.do(t, http.MethodPost, "/api/articles/read", map[string]int64{"userId": 0, "articleId": article.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", env.Message)
}

func TestForumRoutes(t *testing.T) {
	app := newTestApp(t)
	user := app.db.SeedUser("John", "john@example.com")

	status, env := app.do(t, http.MethodPost, "/api/forums/posts", map[string]string{"content": "First"})
	require.Equal(t, http.StatusCreated, status)
	post := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, app.anonymous, post["userId"])

	status, env = app.do(t, http.MethodPost, "/api/forums/posts", map[string]any{"userId": user.ID})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Content is required", env.Message)

	status, _ = app.do(t, http.MethodPost, "/api/forums/posts", map[string]any{"content": "Second", "userId": user.ID})
	require.Equal(t, http.StatusCreated, status)

	status, env = app.do(t, http.MethodGet, "/api/forums/posts", nil)
	require.Equal(t, http.StatusOK, status)
	posts := decode[[]map[string]any](t, env.Data)
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0]["content"])

	postPath := "/api/forums/posts/" + jsonID(post["id"])
	status, env = app.do(t, http.MethodGet, postPath, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(decode[map[string]json.RawMessage](t, env.Data)["replies"]))

	status, env = app.do(t, http.MethodPost, postPath+"/replies/"+strconv.FormatInt(user.ID, 10), map[string]string{"content": "Welcome"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Reply created successfully!", env.Message)

	status, env = app.do(t, http.MethodPost, postPath+"/replies/"+strconv.FormatInt(user.ID, 10), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Content is required", env.Message)

	status, env = app.do(t, http.MethodPost, "/api/forums/posts/999/replies/1", map[string]string{"content": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Post not found", env.Message)

	status, env = app.do(t, http.MethodGet, "/api/forums/posts/999", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Forum post not found", env.Message)
}

func TestQnARoutes(t *testing.T) {
	app := newTestApp(t)
	host := app.db.SeedUser("Dr. Smith", "smith@example.com")

	status, env := app.do(t, http.MethodPost, "/api/qna/sessions", map[string]any{
		"userId": host.ID, "title": "Ask a urologist", "scheduledDate": "2030-01-01T18:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)
	sessionPath := "/api/qna/sessions/" + jsonID(decode[map[string]any](t, env.Data)["id"])

	status, env = app.do(t, http.MethodPost, sessionPath+"/questions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Question is required", env.Message)

	status, env = app.do(t, http.MethodPost, sessionPath+"/questions", map[string]string{"question": "Does heat matter?"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Question submitted successfully!", env.Message)

	status, env = app.do(t, http.MethodGet, "/api/qna/sessions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	status, env = app.do(t, http.MethodGet, sessionPath+"/questions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	status, _ = app.do(t, http.MethodPost, "/api/qna/sessions/999/questions", map[string]string{"question": "?"})
	assert.Equal(t, http.StatusNotFound, status)
}

// sendFrom issues n GETs from remoteAddr, each with a different X-Forwarded-For.
func (a *testApp) sendFrom(remoteAddr string, n int) map[int]int {
	codes := map[int]int{}
	for i := range n {
		req := httptest.NewRequest(http.MethodGet, "/api/qna/sessions", nil)
		req.RemoteAddr = remoteAddr
		req.Header.Set(echo.HeaderXForwardedFor, "1.2.3."+strconv.Itoa(i))
		rec := httptest.NewRecorder()
		a.e.ServeHTTP(rec, req)
		codes[rec.Code]++
	}
	return codes
}

func TestRateLimitKeysOnPeerAddress(t *testing.T) {
	t.Run("forwarded for is ignored from untrusted peers", func(t *testing.T) {
		app := newTestApp(t, func(cfg *config.Config) {
			cfg.Server.RateLimit = 1
		})

		codes := app.sendFrom("10.0.0.2:4321", 20)
		assert.LessOrEqual(t, codes[http.StatusOK], 3)
		assert.GreaterOrEqual(t, codes[http.StatusTooManyRequests], 17)
	})

	t.Run("forwarded for is honoured behind a trusted proxy", func(t *testing.T) {
		app := newTestApp(t, func(cfg *config.Config) {
			cfg.Server.RateLimit = 1
			cfg.Server.TrustedProxies = []string{"10.0.0.0/8"}
		})

		codes := app.sendFrom("10.0.0.2:4321", 20)
		assert.Equal(t, map[int]int{http.StatusOK: 20}, codes)
	})
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	app := newTestApp(t)
	app.db.Err = errors.New("FATAL: terminating connection due to administrator command")

	status, env := app.do(t, http.MethodGet, "/api/users/1/goals", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Internal Server Error", env.Message)
}

func TestSystemRoutes(t *testing.T) {
	app := newTestApp(t)

	status, env := app.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", env.Message)

	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/openapi.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func userPath(userID int64, suffix string) string {
	return "/api/users/" + strconv.FormatInt(userID, 10) + suffix
}

// jsonID formats an id decoded from JSON back into a path segment.
func jsonID(v any) string {
	f, _ := v.(float64)
	return strconv.FormatInt(int64(f), 10)
}
