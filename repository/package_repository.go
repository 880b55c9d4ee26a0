package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"

	"github.com/jackc/pgx/v5"
)

// PackageRepository implements the PackageRepository interface
type PackageRepository struct {
	q queryable
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *database.DB) *PackageRepository {
	return &PackageRepository{q: db.Pool}
}

func newPackageRepositoryWithTx(tx queryable) *PackageRepository {
	return &PackageRepository{q: tx}
}

// List returns packages in display order
func (r *PackageRepository) List(ctx context.Context) ([]*models.Package, error) {
	rows, err := r.q.Query(ctx, `SELECT key, name, price, sort_order FROM packages ORDER BY sort_order, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*models.Package
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.Key, &p.Name, &p.Price, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}

	return packages, nil
}

// GetByKey retrieves a package by key
func (r *PackageRepository) GetByKey(ctx context.Context, key string) (*models.Package, error) {
	var p models.Package
	err := r.q.QueryRow(ctx, `SELECT key, name, price, sort_order FROM packages WHERE key = $1`, key).Scan(
		&p.Key,
		&p.Name,
		&p.Price,
		&p.SortOrder,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package %q: %w", key, err)
	}

	return &p, nil
}

// UpdatePrice sets a package price, returning false when the key is unknown
func (r *PackageRepository) UpdatePrice(ctx context.Context, key string, price int64) (bool, error) {
	result, err := r.q.Exec(ctx, `UPDATE packages SET price = $1 WHERE key = $2`, price, key)
	if err != nil {
		return false, fmt.Errorf("failed to update price of package %q: %w", key, err)
	}

	return result.RowsAffected() == 1, nil
}
