package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back when fn returns an error
func (db *DB) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				err = fmt.Errorf("rollback failed: %v, original error: %w", rbErr, err)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SeedAdmins makes sure every configured admin id exists in the admins table
func (db *DB) SeedAdmins(ctx context.Context, adminIDs []int64) error {
	if len(adminIDs) == 0 {
		return nil
	}

	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, id := range adminIDs {
			if _, err := tx.Exec(ctx, `
				INSERT INTO admins (telegram_id)
				VALUES ($1)
				ON CONFLICT (telegram_id) DO NOTHING
			`, id); err != nil {
				return fmt.Errorf("failed to seed admin %d: %w", id, err)
			}
		}
		return nil
	})
}
