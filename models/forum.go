package models

import (
	"time"
)

// Forum is a discussion board grouping threads
type Forum struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Icon        string    `db:"icon"`
	Color       string    `db:"color"`
	ThreadCount int       `db:"thread_count"`
	ReplyCount  int       `db:"reply_count"`
	IsFeatured  bool      `db:"is_featured"`
	CreatedAt   time.Time `db:"created_at"`
}

// Thread is a discussion started inside a forum
type Thread struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	ForumID     int64     `db:"forum_id"`
	CreatorID   int64     `db:"creator_id"`
	ReplyCount  int       `db:"reply_count"`
	Views       int       `db:"views"`
	IsPinned    bool      `db:"is_pinned"`
	IsLocked    bool      `db:"is_locked"`
	LastReplyAt time.Time `db:"last_reply_at"`
	CreatedAt   time.Time `db:"created_at"`

	// Joined display fields
	ForumName   string `db:"-"`
	CreatorName string `db:"-"`
}

// Reply is a single response to a thread
type Reply struct {
	ID        int64     `db:"id"`
	Content   string    `db:"content"`
	ThreadID  int64     `db:"thread_id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`

	Username string `db:"-"`
}
