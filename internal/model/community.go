package model

import "time"

type Article struct {
	Base
	Title    string `json:"title" db:"title"`
	Content  string `json:"content" db:"content"`
	Category string `json:"category" db:"category"`
}

// ArticleRead records one read of an article. The same pair may be recorded many times.
type ArticleRead struct {
	Base
	UserID    int64 `json:"userId" db:"user_id"`
	ArticleID int64 `json:"articleId" db:"article_id"`
}

type ForumPost struct {
	Base
	UserID  int64  `json:"userId" db:"user_id"`
	Content string `json:"content" db:"content"`
}

// ForumThread is a post with every reply to it.
type ForumThread struct {
	ForumPost
	Replies []ForumReply `json:"replies"`
}

type ForumReply struct {
	Base
	PostID  int64  `json:"postId" db:"post_id"`
	UserID  int64  `json:"userId" db:"user_id"`
	Content string `json:"content" db:"content"`
}

type QnASession struct {
	Base
	UserID        int64     `json:"userId" db:"user_id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	ScheduledDate time.Time `json:"scheduledDate" db:"scheduled_date"`
}

type QnAQuestion struct {
	Base
	SessionID int64  `json:"sessionId" db:"session_id"`
	UserID    int64  `json:"userId" db:"user_id"`
	Question  string `json:"question" db:"question"`
}
