package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"

	"github.com/jackc/pgx/v5"
)

const threadSelect = `
	SELECT
		t.id, t.title, t.content, t.forum_id, t.creator_id, t.reply_count, t.views,
		t.is_pinned, t.is_locked, t.last_reply_at, t.created_at,
		f.name,
		COALESCE(NULLIF(u.username, ''), NULLIF(u.full_name, ''), 'Player')
	FROM threads t
	JOIN forums f ON f.id = t.forum_id
	JOIN users u ON u.telegram_id = t.creator_id
`

// ThreadRepository implements the ThreadRepository interface
type ThreadRepository struct {
	q queryable
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(db *database.DB) *ThreadRepository {
	return &ThreadRepository{q: db.Pool}
}

func newThreadRepositoryWithTx(tx queryable) *ThreadRepository {
	return &ThreadRepository{q: tx}
}

func scanThread(row pgx.Row) (*models.Thread, error) {
	var thread models.Thread
	err := row.Scan(
		&thread.ID,
		&thread.Title,
		&thread.Content,
		&thread.ForumID,
		&thread.CreatorID,
		&thread.ReplyCount,
		&thread.Views,
		&thread.IsPinned,
		&thread.IsLocked,
		&thread.LastReplyAt,
		&thread.CreatedAt,
		&thread.ForumName,
		&thread.CreatorName,
	)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func collectThreads(rows pgx.Rows) ([]*models.Thread, error) {
	defer rows.Close()

	var threads []*models.Thread
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}

	return threads, nil
}

// Create inserts a new thread
func (r *ThreadRepository) Create(ctx context.Context, thread *models.Thread) error {
	query := `
		INSERT INTO threads (title, content, forum_id, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, last_reply_at, created_at
	`

	err := r.q.QueryRow(ctx, query,
		thread.Title,
		thread.Content,
		thread.ForumID,
		thread.CreatorID,
	).Scan(&thread.ID, &thread.LastReplyAt, &thread.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create thread in forum %d: %w", thread.ForumID, err)
	}

	return nil
}

// GetByID retrieves a thread with its forum and creator names
func (r *ThreadRepository) GetByID(ctx context.Context, id int64) (*models.Thread, error) {
	thread, err := scanThread(r.q.QueryRow(ctx, threadSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get thread %d: %w", id, err)
	}

	return thread, nil
}

// IncrementViews counts a view of the thread
func (r *ThreadRepository) IncrementViews(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `UPDATE threads SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views for thread %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("thread %d not found", id)
	}

	return nil
}

// RecordReply bumps the reply counter and last reply time
func (r *ThreadRepository) RecordReply(ctx context.Context, id int64) error {
	query := `
		UPDATE threads
		SET reply_count = reply_count + 1, last_reply_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to record reply for thread %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("thread %d not found", id)
	}

	return nil
}

// ListByForum returns a forum's threads, pinned first then newest
func (r *ThreadRepository) ListByForum(ctx context.Context, forumID int64, limit int) ([]*models.Thread, error) {
	query := threadSelect + `
		WHERE t.forum_id = $1
		ORDER BY t.is_pinned DESC, t.created_at DESC, t.id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, forumID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads for forum %d: %w", forumID, err)
	}

	return collectThreads(rows)
}

// ListByCreator returns threads started by a user, newest first
func (r *ThreadRepository) ListByCreator(ctx context.Context, creatorID int64, limit int) ([]*models.Thread, error) {
	query := threadSelect + `
		WHERE t.creator_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, creatorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads for user %d: %w", creatorID, err)
	}

	return collectThreads(rows)
}
