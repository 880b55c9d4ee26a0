package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"

	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, user_id, name, code, package_key, price, submitted_at`

// PaymentRepository implements the PaymentRepository interface
type PaymentRepository struct {
	q queryable
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *database.DB) *PaymentRepository {
	return &PaymentRepository{q: db.Pool}
}

func newPaymentRepositoryWithTx(tx queryable) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

func scanPayment(row pgx.Row) (*models.PendingPayment, error) {
	var p models.PendingPayment
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Code,
		&p.PackageKey,
		&p.Price,
		&p.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert stores the user's pending payment, replacing an earlier one
func (r *PaymentRepository) Upsert(ctx context.Context, payment *models.PendingPayment) error {
	query := `
		INSERT INTO pending_payments (user_id, name, code, package_key, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
			code = EXCLUDED.code,
			package_key = EXCLUDED.package_key,
			price = EXCLUDED.price,
			submitted_at = NOW()
		RETURNING id, submitted_at
	`

	err := r.q.QueryRow(ctx, query,
		payment.UserID,
		payment.Name,
		payment.Code,
		payment.PackageKey,
		payment.Price,
	).Scan(&payment.ID, &payment.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to store pending payment for user %d: %w", payment.UserID, err)
	}

	return nil
}

// GetByUser returns a user's pending payment
func (r *PaymentRepository) GetByUser(ctx context.Context, userID int64) (*models.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pending_payments WHERE user_id = $1`

	p, err := scanPayment(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending payment for user %d: %w", userID, err)
	}

	return p, nil
}

// List returns the pending queue, oldest first
func (r *PaymentRepository) List(ctx context.Context) ([]*models.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM pending_payments ORDER BY submitted_at, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.PendingPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending payments: %w", err)
	}

	return payments, nil
}

// Count returns the size of the pending queue
func (r *PaymentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM pending_payments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending payments: %w", err)
	}
	return count, nil
}

// DeleteByUser removes the user's pending payment and returns it
func (r *PaymentRepository) DeleteByUser(ctx context.Context, userID int64) (*models.PendingPayment, error) {
	query := `DELETE FROM pending_payments WHERE user_id = $1 RETURNING ` + paymentColumns

	p, err := scanPayment(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete pending payment for user %d: %w", userID, err)
	}

	return p, nil
}
