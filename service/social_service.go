package service

import (
	"context"
	"fmt"

	"clubhouse/events"
	"clubhouse/models"
)

// socialService implements the SocialService interface
type socialService struct {
	uowFactory UnitOfWorkFactory
}

// NewSocialService creates a new social service
func NewSocialService(uowFactory UnitOfWorkFactory) SocialService {
	return &socialService{
		uowFactory: uowFactory,
	}
}

// FollowUser records the follow and both follow counters in one transaction
func (s *socialService) FollowUser(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	target, err := uow.UserRepository().GetByTelegramID(ctx, followedID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return fmt.Errorf("user %d: %w", followedID, ErrNotFound)
	}

	followed, err := uow.FollowRepository().Follow(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}
	if !followed {
		return ErrAlreadyFollowing
	}

	following, err := uow.UserRepository().IncrementStat(ctx, followerID, models.StatsFollowingCount, 1)
	if err != nil {
		return fmt.Errorf("failed to update following count: %w", err)
	}

	if _, err := uow.UserRepository().IncrementStat(ctx, followedID, models.StatsFollowerCount, 1); err != nil {
		return fmt.Errorf("failed to update follower count: %w", err)
	}

	uow.EventBus().Publish(events.UserFollowedEvent{
		FollowerID:     followerID,
		FollowedID:     followedID,
		FollowingCount: following,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UnfollowUser reverses a follow and both counters
func (s *socialService) UnfollowUser(ctx context.Context, followerID, followedID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	removed, err := uow.FollowRepository().Unfollow(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	if !removed {
		return ErrNotFollowing
	}

	if _, err := uow.UserRepository().IncrementStat(ctx, followerID, models.StatsFollowingCount, -1); err != nil {
		return fmt.Errorf("failed to update following count: %w", err)
	}

	if _, err := uow.UserRepository().IncrementStat(ctx, followedID, models.StatsFollowerCount, -1); err != nil {
		return fmt.Errorf("failed to update follower count: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	following, err := uow.FollowRepository().IsFollowing(ctx, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return following, nil
}

func (s *socialService) ListFollowing(ctx context.Context, userID int64, limit int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.FollowRepository().ListFollowing(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	return users, nil
}

func (s *socialService) ListFollowers(ctx context.Context, userID int64, limit int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.FollowRepository().ListFollowers(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	return users, nil
}
