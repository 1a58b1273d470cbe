// Package memory is an in-memory stand-in for the PostgreSQL repositories.
//
// It mirrors their observable behavior (ownership filters, pgx.ErrNoRows,
// foreign key violations as *pgconn.PgError) and is safe for concurrent use.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/virilis/backend/internal/model"
	"github.com/virilis/backend/internal/repository"
)

type DB struct {
	mu     sync.Mutex
	nextID int64

	// Now stamps created_at/updated_at.
	Now func() time.Time
	// Err, when set, is returned by every operation.
	Err error

	users        []model.User
	reports      []model.SemenReport
	habits       []model.Habit
	reminders    []model.Reminder
	goals        []model.Goal
	articles     []model.Article
	articleReads []model.ArticleRead
	posts        []model.ForumPost
	replies      []model.ForumReply
	sessions     []model.QnASession
	questions    []model.QnAQuestion
}

func New() *DB {
	return &DB{Now: func() time.Time { return time.Now().UTC() }}
}

func (db *DB) base() model.Base {
	db.nextID++
	now := db.Now()
	return model.Base{ID: db.nextID, CreatedAt: now, UpdatedAt: now}
}

func fkViolation(table, column string) error {
	return &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        "insert or update on table \"" + table + "\" violates foreign key constraint",
		TableName:      table,
		ColumnName:     column,
		ConstraintName: table + "_" + column + "_fkey",
	}
}

func (db *DB) userExists(id int64) bool {
	return slices.ContainsFunc(db.users, func(u model.User) bool { return u.ID == id })
}

// SeedUser adds a user directly and returns it.
func (db *DB) SeedUser(name, email string) model.User {
	db.mu.Lock()
	defer db.mu.Unlock()

	u := model.User{Base: db.base(), Name: name, Email: email}
	db.users = append(db.users, u)
	return u
}

// SeedArticle adds an article directly and returns it.
func (db *DB) SeedArticle(title, content, category string) model.Article {
	db.mu.Lock()
	defer db.mu.Unlock()

	a := model.Article{Base: db.base(), Title: title, Content: content, Category: category}
	db.articles = append(db.articles, a)
	return a
}

// ArticleReads returns every recorded read.
func (db *DB) ArticleReads() []model.ArticleRead {
	db.mu.Lock()
	defer db.mu.Unlock()
	return slices.Clone(db.articleReads)
}

// Habits returns every stored habit.
func (db *DB) Habits() []model.Habit {
	db.mu.Lock()
	defer db.mu.Unlock()
	return slices.Clone(db.habits)
}

func (db *DB) Users() *Users               { return &Users{db} }
func (db *DB) SemenReports() *SemenReports { return &SemenReports{db} }
func (db *DB) HabitStore() *HabitStore     { return &HabitStore{db} }
func (db *DB) Reminders() *Reminders       { return &Reminders{db} }
func (db *DB) Goals() *Goals               { return &Goals{db} }
func (db *DB) Articles() *Articles         { return &Articles{db} }
func (db *DB) Forum() *Forum               { return &Forum{db} }
func (db *DB) QnA() *QnA                   { return &QnA{db} }

type Users struct{ db *DB }

func (s *Users) Create(_ context.Context, name, email string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for _, u := range s.db.users {
		if u.Email == email {
			return nil, &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"}
		}
	}

	u := model.User{Base: s.db.base(), Name: name, Email: email}
	s.db.users = append(s.db.users, u)
	return &u, nil
}

func (s *Users) GetByID(_ context.Context, userID int64) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for _, u := range s.db.users {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Users) Exists(_ context.Context, userID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return false, s.db.Err
	}
	return s.db.userExists(userID), nil
}

type SemenReports struct{ db *DB }

func (s *SemenReports) Create(_ context.Context, p repository.CreateSemenReportParams) (*model.SemenReport, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(p.UserID) {
		return nil, fkViolation("semen_reports", "user_id")
	}

	r := model.SemenReport{
		Base:       s.db.base(),
		UserID:     p.UserID,
		Count:      p.Count,
		Motility:   p.Motility,
		Morphology: p.Morphology,
		Notes:      p.Notes,
	}
	s.db.reports = append(s.db.reports, r)
	return &r, nil
}

func (s *SemenReports) ListByUser(_ context.Context, userID int64) ([]model.SemenReport, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return filter(s.db.reports, func(r model.SemenReport) bool { return r.UserID == userID }), nil
}

func (s *SemenReports) Latest(_ context.Context, userID int64) (*model.SemenMetrics, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	var latest *model.SemenReport
	for i := range s.db.reports {
		r := &s.db.reports[i]
		if r.UserID != userID {
			continue
		}
		if latest == nil || !r.CreatedAt.Before(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return &model.SemenMetrics{Count: latest.Count, Motility: latest.Motility, Morphology: latest.Morphology}, nil
}

type HabitStore struct{ db *DB }

func (s *HabitStore) Create(_ context.Context, userID int64, category, description string) (*model.Habit, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("habits", "user_id")
	}

	h := model.Habit{Base: s.db.base(), UserID: userID, Category: category, Description: description}
	h.DateLogged = h.CreatedAt
	s.db.habits = append(s.db.habits, h)
	return &h, nil
}

func (s *HabitStore) ListByUser(_ context.Context, userID int64) ([]model.Habit, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return filter(s.db.habits, func(h model.Habit) bool { return h.UserID == userID }), nil
}

func (s *HabitStore) UpdateCategoryForUser(_ context.Context, userID, habitID int64, category string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return 0, s.db.Err
	}

	for i := range s.db.habits {
		h := &s.db.habits[i]
		if h.ID == habitID && h.UserID == userID {
			h.Category = category
			h.UpdatedAt = s.db.Now()
			return 1, nil
		}
	}
	return 0, nil
}

type Reminders struct{ db *DB }

func (s *Reminders) Create(_ context.Context, userID int64, description string, dateTime time.Time) (*model.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("reminders", "user_id")
	}

	r := model.Reminder{Base: s.db.base(), UserID: userID, Description: description, DateTime: dateTime}
	s.db.reminders = append(s.db.reminders, r)
	return &r, nil
}

func (s *Reminders) ListByUser(_ context.Context, userID int64) ([]model.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return filter(s.db.reminders, func(r model.Reminder) bool { return r.UserID == userID }), nil
}

func (s *Reminders) UpdateForUser(_ context.Context, userID, reminderID int64, p repository.UpdateReminderParams) (*model.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for i := range s.db.reminders {
		r := &s.db.reminders[i]
		if r.ID == reminderID && r.UserID == userID {
			r.Snoozed = p.Snoozed
			r.DateTime = p.DateTime
			r.Description = p.Description
			r.UpdatedAt = s.db.Now()
			out := *r
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Reminders) DeleteForUser(_ context.Context, userID, reminderID int64) (*model.Reminder, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for i, r := range s.db.reminders {
		if r.ID == reminderID && r.UserID == userID {
			s.db.reminders = slices.Delete(s.db.reminders, i, i+1)
			return &r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Reminders) GetDelivery(_ context.Context, reminderID int64) (*model.ReminderDelivery, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for _, r := range s.db.reminders {
		if r.ID != reminderID {
			continue
		}
		for _, u := range s.db.users {
			if u.ID == r.UserID {
				return &model.ReminderDelivery{Reminder: r, UserName: u.Name, UserEmail: u.Email}, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

type Goals struct{ db *DB }

func (s *Goals) Create(_ context.Context, userID int64, metric string, targetValue float64) (*model.Goal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("goals", "user_id")
	}

	g := model.Goal{Base: s.db.base(), UserID: userID, Metric: metric, TargetValue: targetValue}
	s.db.goals = append(s.db.goals, g)
	return &g, nil
}

func (s *Goals) ListByUser(_ context.Context, userID int64) ([]model.Goal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return filter(s.db.goals, func(g model.Goal) bool { return g.UserID == userID }), nil
}

func (s *Goals) UpdateForUser(_ context.Context, userID, goalID int64, p repository.UpdateGoalParams) (*model.Goal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for i := range s.db.goals {
		g := &s.db.goals[i]
		if g.ID == goalID && g.UserID == userID {
			g.Metric = p.Metric
			g.TargetValue = p.TargetValue
			if p.Achieved != nil {
				g.Achieved = *p.Achieved
			}
			g.UpdatedAt = s.db.Now()
			out := *g
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Goals) DeleteForUser(_ context.Context, userID, goalID int64) (*model.Goal, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for i, g := range s.db.goals {
		if g.ID == goalID && g.UserID == userID {
			s.db.goals = slices.Delete(s.db.goals, i, i+1)
			return &g, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type Articles struct{ db *DB }

func (s *Articles) List(_ context.Context, search string) ([]model.Article, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	return filter(s.db.articles, func(a model.Article) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Content), needle) ||
			strings.Contains(strings.ToLower(a.Category), needle)
	}), nil
}

func (s *Articles) MarkRead(_ context.Context, userID, articleID int64) (*model.ArticleRead, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("article_reads", "user_id")
	}
	if !slices.ContainsFunc(s.db.articles, func(a model.Article) bool { return a.ID == articleID }) {
		return nil, fkViolation("article_reads", "article_id")
	}

	r := model.ArticleRead{Base: s.db.base(), UserID: userID, ArticleID: articleID}
	s.db.articleReads = append(s.db.articleReads, r)
	return &r, nil
}

type Forum struct{ db *DB }

func (s *Forum) CreatePost(_ context.Context, userID int64, content string) (*model.ForumPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("forum_posts", "user_id")
	}

	p := model.ForumPost{Base: s.db.base(), UserID: userID, Content: content}
	s.db.posts = append(s.db.posts, p)
	return &p, nil
}

func (s *Forum) ListPosts(_ context.Context) ([]model.ForumPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	posts := slices.Clone(s.db.posts)
	slices.Reverse(posts)
	return posts, nil
}

func (s *Forum) GetPost(_ context.Context, postID int64) (*model.ForumPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for _, p := range s.db.posts {
		if p.ID == postID {
			return &p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Forum) PostExists(_ context.Context, postID int64) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return false, s.db.Err
	}
	return slices.ContainsFunc(s.db.posts, func(p model.ForumPost) bool { return p.ID == postID }), nil
}

func (s *Forum) ListReplies(_ context.Context, postID int64) ([]model.ForumReply, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return filter(s.db.replies, func(r model.ForumReply) bool { return r.PostID == postID }), nil
}

func (s *Forum) CreateReply(_ context.Context, postID, userID int64, content string) (*model.ForumReply, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("forum_replies", "user_id")
	}

	r := model.ForumReply{Base: s.db.base(), PostID: postID, UserID: userID, Content: content}
	s.db.replies = append(s.db.replies, r)
	return &r, nil
}

type QnA struct{ db *DB }

func (s *QnA) ListSessions(_ context.Context) ([]model.QnASession, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return slices.Clone(s.db.sessions), nil
}

func (s *QnA) CreateSession(_ context.Context, p repository.CreateSessionParams) (*model.QnASession, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(p.UserID) {
		return nil, fkViolation("qna_sessions", "user_id")
	}

	session := model.QnASession{
		Base:          s.db.base(),
		UserID:        p.UserID,
		Title:         p.Title,
		Description:   p.Description,
		ScheduledDate: p.ScheduledDate,
	}
	s.db.sessions = append(s.db.sessions, session)
	return &session, nil
}

func (s *QnA) GetSession(_ context.Context, sessionID int64) (*model.QnASession, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}

	for _, session := range s.db.sessions {
		if session.ID == sessionID {
			return &session, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *QnA) CreateQuestion(_ context.Context, sessionID, userID int64, question string) (*model.QnAQuestion, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	if !s.db.userExists(userID) {
		return nil, fkViolation("qna_questions", "user_id")
	}

	q := model.QnAQuestion{Base: s.db.base(), SessionID: sessionID, UserID: userID, Question: question}
	s.db.questions = append(s.db.questions, q)
	return &q, nil
}

func (s *QnA) ListQuestions(_ context.Context, sessionID int64) ([]model.QnAQuestion, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.Err != nil {
		return nil, s.db.Err
	}
	return filter(s.db.questions, func(q model.QnAQuestion) bool { return q.SessionID == sessionID }), nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
