package models

// Experience rewards per action
const (
	XPThreadCreated     int64 = 10
	XPTournamentCreated int64 = 10
	XPReplyPosted       int64 = 5
	XPTournamentJoined  int64 = 15
	XPTournamentWon     int64 = 50
	XPBadgeEarned       int64 = 25
)

// ExperiencePerLevel is the XP span of a single level
const ExperiencePerLevel int64 = 100

// LevelForExperience returns the level reached with the given experience
func LevelForExperience(experience int64) int {
	if experience < 0 {
		experience = 0
	}
	return int(experience/ExperiencePerLevel) + 1
}

// LevelProgress describes how far a user is into their current level
type LevelProgress struct {
	CurrentLevelXP int64
	NextLevelXP    int64
	Percent        float64
}

// ProgressFor computes level progress for a level and experience total
func ProgressFor(level int, experience int64) LevelProgress {
	current := int64(level-1) * ExperiencePerLevel
	next := int64(level) * ExperiencePerLevel
	required := next - current

	percent := 100.0
	if required > 0 {
		percent = float64(experience-current) / float64(required) * 100
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return LevelProgress{
		CurrentLevelXP: current,
		NextLevelXP:    next,
		Percent:        percent,
	}
}
