package service

import (
	"context"

	"clubhouse/events"
	"clubhouse/models"

	log "github.com/sirupsen/logrus"
)

// Thresholds for the automatic badges
const (
	ForumExpertThreads     = 10
	ActiveMemberReplies    = 50
	SocialButterflyFollows = 20
)

// AchievementService awards badges in response to domain events
type AchievementService struct {
	badges BadgeService
}

// NewAchievementService creates a new achievement service
func NewAchievementService(badges BadgeService) *AchievementService {
	return &AchievementService{badges: badges}
}

// Subscribe registers the achievement handlers on the bus
func (s *AchievementService) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeThreadCreated, s.HandleThreadCreated)
	bus.Subscribe(events.EventTypeReplyPosted, s.HandleReplyPosted)
	bus.Subscribe(events.EventTypeUserFollowed, s.HandleUserFollowed)
	bus.Subscribe(events.EventTypeTournamentCompleted, s.HandleTournamentCompleted)
}

func (s *AchievementService) HandleThreadCreated(ctx context.Context, event events.Event) {
	e, ok := event.(events.ThreadCreatedEvent)
	if !ok || e.ThreadsCreated < ForumExpertThreads {
		return
	}
	s.award(ctx, e.CreatorID, models.BadgeForumExpert)
}

func (s *AchievementService) HandleReplyPosted(ctx context.Context, event events.Event) {
	e, ok := event.(events.ReplyPostedEvent)
	if !ok || e.RepliesPosted < ActiveMemberReplies {
		return
	}
	s.award(ctx, e.UserID, models.BadgeActiveMember)
}

func (s *AchievementService) HandleUserFollowed(ctx context.Context, event events.Event) {
	e, ok := event.(events.UserFollowedEvent)
	if !ok || e.FollowingCount < SocialButterflyFollows {
		return
	}
	s.award(ctx, e.FollowerID, models.BadgeSocialButterfly)
}

func (s *AchievementService) HandleTournamentCompleted(ctx context.Context, event events.Event) {
	e, ok := event.(events.TournamentCompletedEvent)
	if !ok {
		return
	}
	s.award(ctx, e.WinnerID, models.BadgeTournamentChampion)
}

func (s *AchievementService) award(ctx context.Context, userID int64, badge string) {
	awarded, err := s.badges.AwardBadge(ctx, userID, badge)
	if err != nil {
		log.WithFields(log.Fields{
			"userID": userID,
			"badge":  badge,
			"error":  err,
		}).Error("Failed to award badge")
		return
	}

	if awarded {
		log.WithFields(log.Fields{
			"userID": userID,
			"badge":  badge,
		}).Info("Badge awarded")
	}
}
