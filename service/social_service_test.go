package service

import (
	"context"
	"testing"

	"clubhouse/events"
	"clubhouse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSocialService_FollowUser_Success(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockFollowRepo := new(MockFollowRepository)
	mockPublisher := new(MockEventPublisher)
	mockFactory, mockUoW := setupUnitOfWork(ctx, true, mockUserRepo, mockFollowRepo, mockPublisher)

	service := NewSocialService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(2)).Return(&models.User{TelegramID: 2}, nil)
	mockFollowRepo.On("Follow", ctx, int64(1), int64(2)).Return(true, nil)
	mockUserRepo.On("IncrementStat", ctx, int64(1), models.StatsFollowingCount, 1).Return(20, nil)
	mockUserRepo.On("IncrementStat", ctx, int64(2), models.StatsFollowerCount, 1).Return(3, nil)
	mockPublisher.On("Publish", events.UserFollowedEvent{
		FollowerID:     1,
		FollowedID:     2,
		FollowingCount: 20,
	}).Return()

	err := service.FollowUser(ctx, 1, 2)

	require.NoError(t, err)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockFollowRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestSocialService_FollowUser_Self(t *testing.T) {
	mockFactory := new(MockUnitOfWorkFactory)
	service := NewSocialService(mockFactory)

	err := service.FollowUser(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrSelfFollow)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestSocialService_FollowUser_Twice(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockFollowRepo := new(MockFollowRepository)
	mockFactory, mockUoW := setupUnitOfWork(ctx, false, mockUserRepo, mockFollowRepo)

	service := NewSocialService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(2)).Return(&models.User{TelegramID: 2}, nil)
	mockFollowRepo.On("Follow", ctx, int64(1), int64(2)).Return(false, nil)

	err := service.FollowUser(ctx, 1, 2)

	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	mockUserRepo.AssertNotCalled(t, "IncrementStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestSocialService_UnfollowUser_NotFollowing(t *testing.T) {
	ctx := context.Background()

	mockFollowRepo := new(MockFollowRepository)
	mockFactory, _ := setupUnitOfWork(ctx, false, mockFollowRepo)

	service := NewSocialService(mockFactory)

	mockFollowRepo.On("Unfollow", ctx, int64(1), int64(2)).Return(false, nil)

	err := service.UnfollowUser(ctx, 1, 2)

	assert.ErrorIs(t, err, ErrNotFollowing)
}
