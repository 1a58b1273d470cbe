package repository

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/virilis/backend/internal/model"
)

// dbColumns lists the db tags pgx.RowToStructByName maps, following embedded structs.
func dbColumns(t reflect.Type) []string {
	var columns []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(f.Type)...)
			continue
		}
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}
	return columns
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func TestColumnListsMatchModels(t *testing.T) {
	tests := []struct {
		name    string
		columns string
		model   any
	}{
		{"users", userColumns, model.User{}},
		{"semen_reports", semenReportColumns, model.SemenReport{}},
		{"habits", habitColumns, model.Habit{}},
		{"reminders", reminderColumns, model.Reminder{}},
		{"goals", goalColumns, model.Goal{}},
		{"articles", articleColumns, model.Article{}},
		{"article_reads", articleReadColumns, model.ArticleRead{}},
		{"forum_posts", forumPostColumns, model.ForumPost{}},
		{"forum_replies", forumReplyColumns, model.ForumReply{}},
		{"qna_sessions", qnaSessionColumns, model.QnASession{}},
		{"qna_questions", qnaQuestionColumns, model.QnAQuestion{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, dbColumns(reflect.TypeOf(tt.model)), splitColumns(tt.columns))
		})
	}
}

func TestOwnerScopedStatements(t *testing.T) {
	const ownerFilter = "WHERE id = $1 AND user_id = $2"

	tests := []struct {
		name      string
		stmt      string
		fragments []string
	}{
		{"update goal", updateGoalForUserSQL, []string{"UPDATE goals", "achieved = COALESCE($5, achieved)", "RETURNING " + goalColumns}},
		{"delete goal", deleteGoalForUserSQL, []string{"DELETE FROM goals", "RETURNING " + goalColumns}},
		{"update reminder", updateReminderForUserSQL, []string{"UPDATE reminders", "snoozed = $3", "RETURNING " + reminderColumns}},
		{"delete reminder", deleteReminderForUserSQL, []string{"DELETE FROM reminders", "RETURNING " + reminderColumns}},
		{"complete habit", updateHabitCategoryForUserSQL, []string{"UPDATE habits", "category = $3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.stmt, ownerFilter)
			for _, fragment := range tt.fragments {
				assert.Contains(t, tt.stmt, fragment)
			}
		})
	}
}
