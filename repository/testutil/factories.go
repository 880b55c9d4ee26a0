package testutil

import (
	"time"

	"clubhouse/models"
)

// CreateTestTournament builds an unsaved tournament owned by creatorID
func CreateTestTournament(creatorID int64, name string) *models.Tournament {
	return &models.Tournament{
		Name:        name,
		GameVersion: "FIFA 14",
		MaxTeams:    16,
		Description: "Knockout rounds, best of three",
		CreatorID:   creatorID,
		PrizePool:   models.DefaultPrizePool,
	}
}

// CreateTestTournamentWithCap builds a tournament with a specific team cap
func CreateTestTournamentWithCap(creatorID int64, name string, maxTeams int) *models.Tournament {
	t := CreateTestTournament(creatorID, name)
	t.MaxTeams = maxTeams
	return t
}

// CreateTestThread builds an unsaved thread
func CreateTestThread(forumID, creatorID int64, title string) *models.Thread {
	return &models.Thread{
		Title:     title,
		Content:   "Opening post for " + title,
		ForumID:   forumID,
		CreatorID: creatorID,
	}
}

// CreateTestReply builds an unsaved reply
func CreateTestReply(threadID, userID int64, content string) *models.Reply {
	return &models.Reply{
		Content:  content,
		ThreadID: threadID,
		UserID:   userID,
	}
}

// CreateTestPayment builds an unsaved pending payment
func CreateTestPayment(userID int64, code string) *models.PendingPayment {
	return &models.PendingPayment{
		UserID:      userID,
		Name:        "Student",
		Code:        code,
		PackageKey:  models.DefaultPackageKey,
		Price:       2000,
		SubmittedAt: time.Now(),
	}
}

// CreateTestForum builds an unsaved forum
func CreateTestForum(name, slug string) *models.Forum {
	return &models.Forum{
		Name:        name,
		Slug:        slug,
		Description: "Test forum",
		Category:    "general",
	}
}
