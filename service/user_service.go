package service

import (
	"context"
	"fmt"

	"clubhouse/events"
	"clubhouse/models"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateUser retrieves an existing user or registers a new one
func (s *userService) GetOrCreateUser(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user != nil {
		// Nothing to write when the names are unchanged
		if user.Username == username && user.FullName == fullName {
			return user, nil
		}

		if err := uow.UserRepository().UpdateProfile(ctx, telegramID, username, fullName); err != nil {
			return nil, fmt.Errorf("failed to refresh user profile: %w", err)
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}

		user.Username = username
		user.FullName = fullName
		return user, nil
	}

	// Database primary key on telegram_id prevents duplicate users
	user, err = uow.UserRepository().Create(ctx, telegramID, username, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:   telegramID,
		Username: username,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser returns a user or ErrNotFound
func (s *userService) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
	}

	return user, nil
}

// GrantExperience rewards a user and returns the refreshed user
func (s *userService) GrantExperience(ctx context.Context, telegramID int64, amount int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
	}

	experience, level, err := grantExperience(ctx, uow, telegramID, amount)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.Experience = experience
	user.Level = level
	return user, nil
}

// GetRankings returns the leaderboard for a criteria
func (s *userService) GetRankings(ctx context.Context, criteria models.RankingCriteria, limit int) ([]*models.User, error) {
	if !criteria.Valid() {
		criteria = models.RankByReputation
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetRankings(ctx, criteria, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rankings: %w", err)
	}

	return users, nil
}

// FindPlayers returns users the viewer is not following yet
func (s *userService) FindPlayers(ctx context.Context, viewerID int64, limit int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().ListDiscoverable(ctx, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find players: %w", err)
	}

	return users, nil
}

// GetQuickStats returns community totals
func (s *userService) GetQuickStats(ctx context.Context) (*models.QuickStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stats, err := uow.UserRepository().GetQuickStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quick stats: %w", err)
	}

	return stats, nil
}

// GetAllUserIDs returns every registered user id
func (s *userService) GetAllUserIDs(ctx context.Context) ([]int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ids, err := uow.UserRepository().GetAllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user ids: %w", err)
	}

	return ids, nil
}
