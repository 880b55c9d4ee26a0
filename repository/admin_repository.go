package repository

import (
	"context"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"
)

// AdminRepository implements the AdminRepository interface
type AdminRepository struct {
	q queryable
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *database.DB) *AdminRepository {
	return &AdminRepository{q: db.Pool}
}

func newAdminRepositoryWithTx(tx queryable) *AdminRepository {
	return &AdminRepository{q: tx}
}

// Exists reports whether the id is in the admins table
func (r *AdminRepository) Exists(ctx context.Context, telegramID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE telegram_id = $1)`, telegramID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin %d: %w", telegramID, err)
	}
	return exists, nil
}

// Add inserts an admin, returning false when already present
func (r *AdminRepository) Add(ctx context.Context, telegramID int64, addedBy int64) (bool, error) {
	query := `
		INSERT INTO admins (telegram_id, added_by)
		VALUES ($1, $2)
		ON CONFLICT (telegram_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, telegramID, addedBy)
	if err != nil {
		return false, fmt.Errorf("failed to add admin %d: %w", telegramID, err)
	}

	return result.RowsAffected() == 1, nil
}

// Remove deletes an admin, returning false when absent
func (r *AdminRepository) Remove(ctx context.Context, telegramID int64) (bool, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM admins WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return false, fmt.Errorf("failed to remove admin %d: %w", telegramID, err)
	}

	return result.RowsAffected() == 1, nil
}

// List returns every admin row
func (r *AdminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	rows, err := r.q.Query(ctx, `SELECT telegram_id, added_by, created_at FROM admins ORDER BY created_at, telegram_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []*models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.TelegramID, &a.AddedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admins: %w", err)
	}

	return admins, nil
}
