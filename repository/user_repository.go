package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"

	"github.com/jackc/pgx/v5"
)

const userSelect = `
	SELECT
		u.telegram_id,
		u.username,
		u.full_name,
		u.role,
		u.level,
		u.experience,
		u.threads_created,
		u.replies_posted,
		u.tournaments_joined,
		u.reputation,
		u.paid,
		u.package,
		u.pending_package,
		u.created_at,
		u.last_active,
		COALESCE(s.post_count, 0),
		COALESCE(s.badge_count, 0),
		COALESCE(s.following_count, 0),
		COALESCE(s.follower_count, 0)
	FROM users u
	LEFT JOIN user_stats s ON s.user_id = u.telegram_id
`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.TelegramID,
		&user.Username,
		&user.FullName,
		&user.Role,
		&user.Level,
		&user.Experience,
		&user.ThreadsCreated,
		&user.RepliesPosted,
		&user.TournamentsJoined,
		&user.Reputation,
		&user.Paid,
		&user.Package,
		&user.PendingPackage,
		&user.CreatedAt,
		&user.LastActive,
		&user.Stats.PostCount,
		&user.Stats.BadgeCount,
		&user.Stats.FollowingCount,
		&user.Stats.FollowerCount,
	)
	if err != nil {
		return nil, err
	}
	user.Stats.UserID = user.TelegramID
	return &user, nil
}

func collectUsers(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetByTelegramID retrieves a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := userSelect + ` WHERE u.telegram_id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, telegramID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by telegram ID %d: %w", telegramID, err)
	}

	return user, nil
}

// Create creates a new user and their stats row
func (r *UserRepository) Create(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error) {
	query := `
		INSERT INTO users (telegram_id, username, full_name)
		VALUES ($1, $2, $3)
	`

	if _, err := r.q.Exec(ctx, query, telegramID, username, fullName); err != nil {
		return nil, fmt.Errorf("failed to create user with telegram ID %d: %w", telegramID, err)
	}

	statsQuery := `
		INSERT INTO user_stats (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, statsQuery, telegramID); err != nil {
		return nil, fmt.Errorf("failed to create stats for user %d: %w", telegramID, err)
	}

	user, err := r.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d missing after insert", telegramID)
	}

	return user, nil
}

// UpdateProfile refreshes the user's names and last activity
func (r *UserRepository) UpdateProfile(ctx context.Context, telegramID int64, username, fullName string) error {
	query := `
		UPDATE users
		SET username = $1, full_name = $2, last_active = NOW()
		WHERE telegram_id = $3
	`

	result, err := r.q.Exec(ctx, query, username, fullName, telegramID)
	if err != nil {
		return fmt.Errorf("failed to update profile for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with telegram ID %d not found", telegramID)
	}

	return nil
}

// AddExperience adds experience atomically and returns the new total with the stored level
func (r *UserRepository) AddExperience(ctx context.Context, telegramID int64, amount int64) (int64, int, error) {
	query := `
		UPDATE users
		SET experience = experience + $1, last_active = NOW()
		WHERE telegram_id = $2
		RETURNING experience, level
	`

	var experience int64
	var level int
	err := r.q.QueryRow(ctx, query, amount, telegramID).Scan(&experience, &level)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, fmt.Errorf("user with telegram ID %d not found", telegramID)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to add experience for user %d: %w", telegramID, err)
	}

	return experience, level, nil
}

// SetLevel stores the user's level
func (r *UserRepository) SetLevel(ctx context.Context, telegramID int64, level int) error {
	result, err := r.q.Exec(ctx, `UPDATE users SET level = $1 WHERE telegram_id = $2`, level, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set level for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with telegram ID %d not found", telegramID)
	}

	return nil
}

func userCounterColumn(counter models.UserCounter) (string, error) {
	switch counter {
	case models.CounterThreadsCreated, models.CounterRepliesPosted,
		models.CounterTournamentsJoined, models.CounterReputation:
		return string(counter), nil
	}
	return "", fmt.Errorf("unknown user counter %q", counter)
}

// IncrementCounter adjusts a progression counter, never going below zero
func (r *UserRepository) IncrementCounter(ctx context.Context, telegramID int64, counter models.UserCounter, delta int) (int, error) {
	column, err := userCounterColumn(counter)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = GREATEST(%[1]s + $1, 0)
		WHERE telegram_id = $2
		RETURNING %[1]s
	`, column)

	var value int
	err = r.q.QueryRow(ctx, query, delta, telegramID).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("user with telegram ID %d not found", telegramID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s for user %d: %w", column, telegramID, err)
	}

	return value, nil
}

func statsCounterColumn(counter models.StatsCounter) (string, error) {
	switch counter {
	case models.StatsPostCount, models.StatsBadgeCount,
		models.StatsFollowingCount, models.StatsFollowerCount:
		return string(counter), nil
	}
	return "", fmt.Errorf("unknown stats counter %q", counter)
}

// IncrementStat adjusts a user_stats counter, creating the row when missing
func (r *UserRepository) IncrementStat(ctx context.Context, telegramID int64, counter models.StatsCounter, delta int) (int, error) {
	column, err := statsCounterColumn(counter)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO user_stats (user_id, %[1]s)
		VALUES ($2, GREATEST($1, 0))
		ON CONFLICT (user_id) DO UPDATE
		SET %[1]s = GREATEST(user_stats.%[1]s + $1, 0), updated_at = NOW()
		RETURNING %[1]s
	`, column)

	var value int
	if err := r.q.QueryRow(ctx, query, delta, telegramID).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to increment %s for user %d: %w", column, telegramID, err)
	}

	return value, nil
}

// SetPendingPackage records the package a user booked
func (r *UserRepository) SetPendingPackage(ctx context.Context, telegramID int64, packageKey string) error {
	result, err := r.q.Exec(ctx, `UPDATE users SET pending_package = $1 WHERE telegram_id = $2`, packageKey, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set pending package for user %d: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with telegram ID %d not found", telegramID)
	}

	return nil
}

// MarkPaid sets the paid flag and approved package
func (r *UserRepository) MarkPaid(ctx context.Context, telegramID int64, packageKey string) error {
	query := `
		UPDATE users
		SET paid = TRUE, package = $1
		WHERE telegram_id = $2
	`

	result, err := r.q.Exec(ctx, query, packageKey, telegramID)
	if err != nil {
		return fmt.Errorf("failed to mark user %d as paid: %w", telegramID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with telegram ID %d not found", telegramID)
	}

	return nil
}

// GetRankings returns users ordered by the criteria column
func (r *UserRepository) GetRankings(ctx context.Context, criteria models.RankingCriteria, limit int) ([]*models.User, error) {
	if !criteria.Valid() {
		criteria = models.RankByReputation
	}

	query := userSelect + fmt.Sprintf(`
		ORDER BY u.%s DESC, u.experience DESC, u.telegram_id
		LIMIT $1
	`, criteria)

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rankings by %s: %w", criteria, err)
	}

	return collectUsers(rows)
}

// ListDiscoverable returns users the viewer does not follow yet
func (r *UserRepository) ListDiscoverable(ctx context.Context, viewerID int64, limit int) ([]*models.User, error) {
	query := userSelect + `
		WHERE u.telegram_id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM user_follows f
			WHERE f.follower_id = $1 AND f.followed_id = u.telegram_id
		  )
		ORDER BY u.reputation DESC, u.level DESC, u.telegram_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list discoverable users for %d: %w", viewerID, err)
	}

	return collectUsers(rows)
}

// GetAllIDs returns every user id
func (r *UserRepository) GetAllIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT telegram_id FROM users ORDER BY telegram_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get user ids: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user ids: %w", err)
	}

	return ids, nil
}

// GetQuickStats returns community-wide totals in a single round trip
func (r *UserRepository) GetQuickStats(ctx context.Context) (*models.QuickStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM threads),
			(SELECT COUNT(*) FROM replies),
			(SELECT COUNT(*) FROM tournaments),
			(SELECT COUNT(*) FROM tournaments WHERE status = 'active')
	`

	var stats models.QuickStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.TotalThreads,
		&stats.TotalReplies,
		&stats.TotalTournaments,
		&stats.ActiveTournaments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get quick stats: %w", err)
	}

	return &stats, nil
}
