package models

import (
	"time"
)

// Badge names with automatic award rules
const (
	BadgeTournamentChampion = "Tournament Champion"
	BadgeActiveMember       = "Active Member"
	BadgeForumExpert        = "Forum Expert"
	BadgeSocialButterfly    = "Social Butterfly"
)

// Badge is an achievement users can earn
type Badge struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Color       string `db:"color"`
}

// UserBadge records a badge awarded to a user
type UserBadge struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	BadgeName string    `db:"badge_name"`
	AwardedAt time.Time `db:"awarded_at"`
}
