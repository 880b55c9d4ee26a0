package models

import (
	"time"
)

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentStatusPending   TournamentStatus = "pending"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// Team cap bounds accepted by the creation wizard
const (
	MinTournamentTeams = 2
	MaxTournamentTeams = 64
)

// DefaultPrizePool is used when a tournament is created without a prize
const DefaultPrizePool = "Glory"

// Tournament is a competitive event users can join
type Tournament struct {
	ID           int64            `db:"id"`
	Name         string           `db:"name"`
	GameVersion  string           `db:"game_version"`
	MaxTeams     int              `db:"max_teams"`
	Description  string           `db:"description"`
	CreatorID    int64            `db:"creator_id"`
	Status       TournamentStatus `db:"status"`
	CurrentTeams int              `db:"current_teams"`
	PrizePool    string           `db:"prize_pool"`
	Rules        *string          `db:"rules"`
	BannerURL    *string          `db:"banner_url"`
	WinnerID     *int64           `db:"winner_id"`
	CreatedAt    time.Time        `db:"created_at"`

	CreatorName string `db:"-"`
}

// IsFull reports whether no more teams can join
func (t *Tournament) IsFull() bool {
	return t.CurrentTeams >= t.MaxTeams
}

// Participant is a user registered in a tournament
type Participant struct {
	UserID   int64     `db:"user_id"`
	Username string    `db:"username"`
	JoinedAt time.Time `db:"joined_at"`
}
