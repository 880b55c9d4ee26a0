package repository

import (
	"context"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"
)

// ReplyRepository implements the ReplyRepository interface
type ReplyRepository struct {
	q queryable
}

// NewReplyRepository creates a new reply repository
func NewReplyRepository(db *database.DB) *ReplyRepository {
	return &ReplyRepository{q: db.Pool}
}

func newReplyRepositoryWithTx(tx queryable) *ReplyRepository {
	return &ReplyRepository{q: tx}
}

// Create inserts a new reply
func (r *ReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	query := `
		INSERT INTO replies (content, thread_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, reply.Content, reply.ThreadID, reply.UserID).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reply on thread %d: %w", reply.ThreadID, err)
	}

	return nil
}

// ListByThread returns a thread's replies in posting order
func (r *ReplyRepository) ListByThread(ctx context.Context, threadID int64, limit int) ([]*models.Reply, error) {
	query := `
		SELECT
			r.id, r.content, r.thread_id, r.user_id, r.created_at,
			COALESCE(NULLIF(u.username, ''), NULLIF(u.full_name, ''), 'Player')
		FROM replies r
		JOIN users u ON u.telegram_id = r.user_id
		WHERE r.thread_id = $1
		ORDER BY r.created_at ASC, r.id ASC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, threadID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies for thread %d: %w", threadID, err)
	}
	defer rows.Close()

	var replies []*models.Reply
	for rows.Next() {
		var reply models.Reply
		err := rows.Scan(
			&reply.ID,
			&reply.Content,
			&reply.ThreadID,
			&reply.UserID,
			&reply.CreatedAt,
			&reply.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		replies = append(replies, &reply)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate replies: %w", err)
	}

	return replies, nil
}
