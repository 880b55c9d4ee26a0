package models

import (
	"time"
)

// DefaultPackageKey is used when a user checks payment without booking first
const DefaultPackageKey = "single"

// Package is a purchasable bundle of prediction papers
type Package struct {
	Key       string `db:"key"`
	Name      string `db:"name"`
	Price     int64  `db:"price"`
	SortOrder int    `db:"sort_order"`
}

// PendingPayment is a submitted payment code awaiting admin review
type PendingPayment struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	PackageKey  string    `db:"package_key"`
	Price       int64     `db:"price"`
	SubmittedAt time.Time `db:"submitted_at"`
}

// Admin is a user allowed to run privileged commands
type Admin struct {
	TelegramID int64     `db:"telegram_id"`
	AddedBy    *int64    `db:"added_by"`
	CreatedAt  time.Time `db:"created_at"`
}
