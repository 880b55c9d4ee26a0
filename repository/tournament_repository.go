package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/models"

	"github.com/jackc/pgx/v5"
)

const tournamentSelect = `
	SELECT
		t.id, t.name, t.game_version, t.max_teams, t.description, t.creator_id,
		t.status, t.current_teams, t.prize_pool, t.rules, t.banner_url, t.winner_id,
		t.created_at,
		COALESCE(NULLIF(u.username, ''), NULLIF(u.full_name, ''), 'Unknown')
	FROM tournaments t
	LEFT JOIN users u ON u.telegram_id = t.creator_id
`

// TournamentRepository implements the TournamentRepository interface
type TournamentRepository struct {
	q queryable
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *database.DB) *TournamentRepository {
	return &TournamentRepository{q: db.Pool}
}

func newTournamentRepositoryWithTx(tx queryable) *TournamentRepository {
	return &TournamentRepository{q: tx}
}

func scanTournament(row pgx.Row) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.GameVersion,
		&t.MaxTeams,
		&t.Description,
		&t.CreatorID,
		&t.Status,
		&t.CurrentTeams,
		&t.PrizePool,
		&t.Rules,
		&t.BannerURL,
		&t.WinnerID,
		&t.CreatedAt,
		&t.CreatorName,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTournaments(rows pgx.Rows) ([]*models.Tournament, error) {
	defer rows.Close()

	var tournaments []*models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tournaments: %w", err)
	}

	return tournaments, nil
}

// Create inserts a new tournament
func (r *TournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	prizePool := t.PrizePool
	if prizePool == "" {
		prizePool = models.DefaultPrizePool
	}

	query := `
		INSERT INTO tournaments (name, game_version, max_teams, description, creator_id, prize_pool, rules, banner_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, status, current_teams, prize_pool, created_at
	`

	err := r.q.QueryRow(ctx, query,
		t.Name,
		t.GameVersion,
		t.MaxTeams,
		t.Description,
		t.CreatorID,
		prizePool,
		t.Rules,
		t.BannerURL,
	).Scan(&t.ID, &t.Status, &t.CurrentTeams, &t.PrizePool, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament %q: %w", t.Name, err)
	}

	return nil
}

// GetByID retrieves a tournament by ID
func (r *TournamentRepository) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	t, err := scanTournament(r.q.QueryRow(ctx, tournamentSelect+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	return t, nil
}

// List returns tournaments, newest first
func (r *TournamentRepository) List(ctx context.Context, status *models.TournamentStatus, limit int) ([]*models.Tournament, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if status != nil {
		query := tournamentSelect + `
			WHERE t.status = $1
			ORDER BY t.created_at DESC, t.id DESC
			LIMIT $2
		`
		rows, err = r.q.Query(ctx, query, *status, limit)
	} else {
		query := tournamentSelect + `
			ORDER BY t.created_at DESC, t.id DESC
			LIMIT $1
		`
		rows, err = r.q.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	return collectTournaments(rows)
}

// ListByParticipant returns tournaments the user joined, most recent join first
func (r *TournamentRepository) ListByParticipant(ctx context.Context, userID int64, limit int) ([]*models.Tournament, error) {
	query := tournamentSelect + `
		JOIN tournament_participants p ON p.tournament_id = t.id
		WHERE p.user_id = $1
		ORDER BY p.joined_at DESC, t.id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for user %d: %w", userID, err)
	}

	return collectTournaments(rows)
}

// AddParticipant registers a user, relying on the unique (tournament, user) pair
func (r *TournamentRepository) AddParticipant(ctx context.Context, tournamentID, userID int64) (bool, error) {
	query := `
		INSERT INTO tournament_participants (tournament_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (tournament_id, user_id) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, tournamentID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add user %d to tournament %d: %w", userID, tournamentID, err)
	}

	return result.RowsAffected() == 1, nil
}

// RemoveParticipant deletes a registration
func (r *TournamentRepository) RemoveParticipant(ctx context.Context, tournamentID, userID int64) (bool, error) {
	query := `DELETE FROM tournament_participants WHERE tournament_id = $1 AND user_id = $2`

	result, err := r.q.Exec(ctx, query, tournamentID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove user %d from tournament %d: %w", userID, tournamentID, err)
	}

	return result.RowsAffected() == 1, nil
}

// IsParticipant reports whether a user joined a tournament
func (r *TournamentRepository) IsParticipant(ctx context.Context, tournamentID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tournament_participants
			WHERE tournament_id = $1 AND user_id = $2
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, tournamentID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check participation of user %d in tournament %d: %w", userID, tournamentID, err)
	}

	return exists, nil
}

// ListParticipants returns participants in join order
func (r *TournamentRepository) ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error) {
	query := `
		SELECT p.user_id, COALESCE(NULLIF(u.username, ''), NULLIF(u.full_name, ''), 'Player'), p.joined_at
		FROM tournament_participants p
		JOIN users u ON u.telegram_id = p.user_id
		WHERE p.tournament_id = $1
		ORDER BY p.joined_at, p.id
	`

	rows, err := r.q.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.UserID, &p.Username, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// AdjustTeams changes the team count and returns the new value
func (r *TournamentRepository) AdjustTeams(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE tournaments
		SET current_teams = GREATEST(current_teams + $1, 0)
		WHERE id = $2
		RETURNING current_teams
	`

	var teams int
	err := r.q.QueryRow(ctx, query, delta, id).Scan(&teams)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("tournament %d not found", id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust teams for tournament %d: %w", id, err)
	}

	return teams, nil
}

// UpdateStatus changes the tournament status and winner
func (r *TournamentRepository) UpdateStatus(ctx context.Context, id int64, status models.TournamentStatus, winnerID *int64) error {
	query := `
		UPDATE tournaments
		SET status = $1, winner_id = COALESCE($2, winner_id)
		WHERE id = $3
	`

	result, err := r.q.Exec(ctx, query, status, winnerID, id)
	if err != nil {
		return fmt.Errorf("failed to update status of tournament %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tournament %d not found", id)
	}

	return nil
}
