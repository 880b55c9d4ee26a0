package service

import (
	"context"
	"fmt"

	"clubhouse/events"
	"clubhouse/models"
)

// badgeService implements the BadgeService interface
type badgeService struct {
	uowFactory UnitOfWorkFactory
}

// NewBadgeService creates a new badge service
func NewBadgeService(uowFactory UnitOfWorkFactory) BadgeService {
	return &badgeService{
		uowFactory: uowFactory,
	}
}

func (s *badgeService) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	badges, err := uow.BadgeRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}

	return badges, nil
}

func (s *badgeService) ListUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	badges, err := uow.BadgeRepository().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}

	return badges, nil
}

// AwardBadge grants the badge, bumps badge_count and adds the badge reward
func (s *badgeService) AwardBadge(ctx context.Context, userID int64, badgeName string) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	awarded, err := uow.BadgeRepository().Award(ctx, userID, badgeName)
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}
	if !awarded {
		return false, nil
	}

	if _, err := uow.UserRepository().IncrementStat(ctx, userID, models.StatsBadgeCount, 1); err != nil {
		return false, fmt.Errorf("failed to update badge count: %w", err)
	}

	if _, _, err := grantExperience(ctx, uow, userID, models.XPBadgeEarned); err != nil {
		return false, err
	}

	uow.EventBus().Publish(events.BadgeAwardedEvent{
		UserID:    userID,
		BadgeName: badgeName,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}
