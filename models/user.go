package models

import (
	"time"
)

// Role represents a user's community role
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User represents a chat platform user with community progression
type User struct {
	TelegramID        int64     `db:"telegram_id"`
	Username          string    `db:"username"`
	FullName          string    `db:"full_name"`
	Role              Role      `db:"role"`
	Level             int       `db:"level"`
	Experience        int64     `db:"experience"`
	ThreadsCreated    int       `db:"threads_created"`
	RepliesPosted     int       `db:"replies_posted"`
	TournamentsJoined int       `db:"tournaments_joined"`
	Reputation        int       `db:"reputation"`
	Paid              bool      `db:"paid"`
	Package           *string   `db:"package"`
	PendingPackage    *string   `db:"pending_package"`
	CreatedAt         time.Time `db:"created_at"`
	LastActive        time.Time `db:"last_active"`

	// Joined from user_stats
	Stats UserStats `db:"-"`
}

// DisplayName returns the best available name for the user
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.FullName != "" {
		return u.FullName
	}
	return "Player"
}

// UserStats holds denormalised social counters for quick access
type UserStats struct {
	UserID         int64     `db:"user_id"`
	PostCount      int       `db:"post_count"`
	BadgeCount     int       `db:"badge_count"`
	FollowingCount int       `db:"following_count"`
	FollowerCount  int       `db:"follower_count"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// UserCounter names a numeric user column that can be incremented
type UserCounter string

const (
	CounterThreadsCreated    UserCounter = "threads_created"
	CounterRepliesPosted     UserCounter = "replies_posted"
	CounterTournamentsJoined UserCounter = "tournaments_joined"
	CounterReputation        UserCounter = "reputation"
)

// StatsCounter names a user_stats column that can be incremented
type StatsCounter string

const (
	StatsPostCount      StatsCounter = "post_count"
	StatsBadgeCount     StatsCounter = "badge_count"
	StatsFollowingCount StatsCounter = "following_count"
	StatsFollowerCount  StatsCounter = "follower_count"
)

// RankingCriteria is the column users are ordered by on leaderboards
type RankingCriteria string

const (
	RankByReputation        RankingCriteria = "reputation"
	RankByLevel             RankingCriteria = "level"
	RankByThreadsCreated    RankingCriteria = "threads_created"
	RankByRepliesPosted     RankingCriteria = "replies_posted"
	RankByTournamentsJoined RankingCriteria = "tournaments_joined"
)

// Valid reports whether the criteria is a known ranking column
func (c RankingCriteria) Valid() bool {
	switch c {
	case RankByReputation, RankByLevel, RankByThreadsCreated, RankByRepliesPosted, RankByTournamentsJoined:
		return true
	}
	return false
}

// QuickStats is the community-wide summary shown on menus
type QuickStats struct {
	TotalUsers        int
	TotalThreads      int
	TotalReplies      int
	TotalTournaments  int
	ActiveTournaments int
}
