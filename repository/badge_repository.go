package repository

import (
	"context"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"
)

// BadgeRepository implements the BadgeRepository interface
type BadgeRepository struct {
	q queryable
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *database.DB) *BadgeRepository {
	return &BadgeRepository{q: db.Pool}
}

func newBadgeRepositoryWithTx(tx queryable) *BadgeRepository {
	return &BadgeRepository{q: tx}
}

// List returns every badge in seed order
func (r *BadgeRepository) List(ctx context.Context) ([]*models.Badge, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, color FROM badges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Color); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badges: %w", err)
	}

	return badges, nil
}

// Award grants a badge, returning false when the user already holds it
func (r *BadgeRepository) Award(ctx context.Context, userID int64, badgeName string) (bool, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_name) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, userID, badgeName)
	if err != nil {
		return false, fmt.Errorf("failed to award badge %q to user %d: %w", badgeName, userID, err)
	}

	return result.RowsAffected() == 1, nil
}

// ListByUser returns a user's badges, most recent first
func (r *BadgeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	query := `
		SELECT id, user_id, badge_name, awarded_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY awarded_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges for user %d: %w", userID, err)
	}
	defer rows.Close()

	var badges []*models.UserBadge
	for rows.Next() {
		var b models.UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeName, &b.AwardedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		badges = append(badges, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user badges: %w", err)
	}

	return badges, nil
}
