package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"

	"github.com/jackc/pgx/v5"
)

const forumColumns = `
	f.id, f.name, f.slug, f.description, f.category, f.icon, f.color,
	f.thread_count, f.reply_count, f.is_featured, f.created_at
`

// ForumRepository implements the ForumRepository interface
type ForumRepository struct {
	q queryable
}

// NewForumRepository creates a new forum repository
func NewForumRepository(db *database.DB) *ForumRepository {
	return &ForumRepository{q: db.Pool}
}

func newForumRepositoryWithTx(tx queryable) *ForumRepository {
	return &ForumRepository{q: tx}
}

func scanForum(row pgx.Row) (*models.Forum, error) {
	var forum models.Forum
	err := row.Scan(
		&forum.ID,
		&forum.Name,
		&forum.Slug,
		&forum.Description,
		&forum.Category,
		&forum.Icon,
		&forum.Color,
		&forum.ThreadCount,
		&forum.ReplyCount,
		&forum.IsFeatured,
		&forum.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &forum, nil
}

func collectForums(rows pgx.Rows) ([]*models.Forum, error) {
	defer rows.Close()

	var forums []*models.Forum
	for rows.Next() {
		forum, err := scanForum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan forum: %w", err)
		}
		forums = append(forums, forum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forums: %w", err)
	}

	return forums, nil
}

// List returns forums ordered by activity
func (r *ForumRepository) List(ctx context.Context, featuredOnly bool) ([]*models.Forum, error) {
	query := `SELECT ` + forumColumns + ` FROM forums f`
	if featuredOnly {
		query += ` WHERE f.is_featured`
	}
	query += ` ORDER BY f.thread_count DESC, f.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list forums: %w", err)
	}

	return collectForums(rows)
}

// GetByID retrieves a forum by ID
func (r *ForumRepository) GetByID(ctx context.Context, id int64) (*models.Forum, error) {
	query := `SELECT ` + forumColumns + ` FROM forums f WHERE f.id = $1`

	forum, err := scanForum(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get forum %d: %w", id, err)
	}

	return forum, nil
}

// Create inserts a new forum
func (r *ForumRepository) Create(ctx context.Context, forum *models.Forum) error {
	query := `
		INSERT INTO forums (name, slug, description, category, icon, color, is_featured)
		VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), '💬'), COALESCE(NULLIF($6, ''), '#3498db'), $7)
		RETURNING id, icon, color, created_at
	`

	err := r.q.QueryRow(ctx, query,
		forum.Name,
		forum.Slug,
		forum.Description,
		forum.Category,
		forum.Icon,
		forum.Color,
		forum.IsFeatured,
	).Scan(&forum.ID, &forum.Icon, &forum.Color, &forum.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create forum %q: %w", forum.Name, err)
	}

	return nil
}

// IncrementThreadCount adjusts the thread counter
func (r *ForumRepository) IncrementThreadCount(ctx context.Context, id int64, delta int) error {
	result, err := r.q.Exec(ctx, `UPDATE forums SET thread_count = thread_count + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update thread count for forum %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("forum %d not found", id)
	}

	return nil
}

// IncrementReplyCount adjusts the reply counter
func (r *ForumRepository) IncrementReplyCount(ctx context.Context, id int64, delta int) error {
	result, err := r.q.Exec(ctx, `UPDATE forums SET reply_count = reply_count + $1 WHERE id = $2`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update reply count for forum %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("forum %d not found", id)
	}

	return nil
}

// Follow records that a user follows a forum
func (r *ForumRepository) Follow(ctx context.Context, userID, forumID int64) (bool, error) {
	query := `
		INSERT INTO forum_follows (user_id, forum_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, forum_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, userID, forumID)
	if err != nil {
		return false, fmt.Errorf("failed to follow forum %d for user %d: %w", forumID, userID, err)
	}

	return result.RowsAffected() == 1, nil
}

// Unfollow removes a forum follow
func (r *ForumRepository) Unfollow(ctx context.Context, userID, forumID int64) (bool, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM forum_follows WHERE user_id = $1 AND forum_id = $2`, userID, forumID)
	if err != nil {
		return false, fmt.Errorf("failed to unfollow forum %d for user %d: %w", forumID, userID, err)
	}

	return result.RowsAffected() == 1, nil
}

// ListFollowedIDs returns the forum ids a user follows
func (r *ForumRepository) ListFollowedIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT forum_id FROM forum_follows WHERE user_id = $1 ORDER BY forum_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed forums for user %d: %w", userID, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to collect followed forums: %w", err)
	}

	return ids, nil
}

// ListFollowed returns the forums a user follows
func (r *ForumRepository) ListFollowed(ctx context.Context, userID int64) ([]*models.Forum, error) {
	query := `
		SELECT ` + forumColumns + `
		FROM forums f
		JOIN forum_follows ff ON ff.forum_id = f.id
		WHERE ff.user_id = $1
		ORDER BY ff.created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed forums for user %d: %w", userID, err)
	}

	return collectForums(rows)
}
