package repository

import (
	"context"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"
)

// FollowRepository implements the FollowRepository interface
type FollowRepository struct {
	q queryable
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *database.DB) *FollowRepository {
	return &FollowRepository{q: db.Pool}
}

func newFollowRepositoryWithTx(tx queryable) *FollowRepository {
	return &FollowRepository{q: tx}
}

// Follow records a follow, returning false when it already existed
func (r *FollowRepository) Follow(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `
		INSERT INTO user_follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to record follow %d -> %d: %w", followerID, followedID, err)
	}

	return result.RowsAffected() == 1, nil
}

// Unfollow deletes a follow, returning false when there was none
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `DELETE FROM user_follows WHERE follower_id = $1 AND followed_id = $2`

	result, err := r.q.Exec(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow %d -> %d: %w", followerID, followedID, err)
	}

	return result.RowsAffected() == 1, nil
}

// IsFollowing reports whether follower follows followed
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_follows
			WHERE follower_id = $1 AND followed_id = $2
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow %d -> %d: %w", followerID, followedID, err)
	}

	return exists, nil
}

// ListFollowing returns the users someone follows
func (r *FollowRepository) ListFollowing(ctx context.Context, userID int64, limit int) ([]*models.User, error) {
	query := userSelect + `
		JOIN user_follows f ON f.followed_id = u.telegram_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list following for user %d: %w", userID, err)
	}

	return collectUsers(rows)
}

// ListFollowers returns the users following someone
func (r *FollowRepository) ListFollowers(ctx context.Context, userID int64, limit int) ([]*models.User, error) {
	query := userSelect + `
		JOIN user_follows f ON f.follower_id = u.telegram_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers for user %d: %w", userID, err)
	}

	return collectUsers(rows)
}
