package service

import (
	"context"
	"errors"
	"testing"

	"clubhouse/events"
	"clubhouse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupUnitOfWork wires a factory that hands out one mock unit of work. When
// commit is true a successful Commit is expected.
func setupUnitOfWork(ctx context.Context, commit bool, deps ...any) (*MockUnitOfWorkFactory, *MockUnitOfWork) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)

	mockUoW.SetRepositories(deps...)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	if commit {
		mockUoW.On("Commit").Return(nil)
	}

	return mockFactory, mockUoW
}

func TestUserService_GetOrCreateUser_ExistingUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)
	mockFactory, mockUoW := setupUnitOfWork(ctx, false, mockUserRepo, mockPublisher)

	service := NewUserService(mockFactory)

	existingUser := &models.User{
		TelegramID: 123456,
		Username:   "testuser",
		FullName:   "Test User",
		Level:      3,
	}

	// No Commit() expected since nothing changed
	mockUserRepo.On("GetByTelegramID", ctx, int64(123456)).Return(existingUser, nil)

	user, err := service.GetOrCreateUser(ctx, 123456, "testuser", "Test User")

	assert.NoError(t, err)
	assert.Equal(t, existingUser, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUserService_GetOrCreateUser_RefreshesNames(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockFactory, mockUoW := setupUnitOfWork(ctx, true, mockUserRepo)

	service := NewUserService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(123456)).Return(&models.User{
		TelegramID: 123456,
		Username:   "old",
	}, nil)
	mockUserRepo.On("UpdateProfile", ctx, int64(123456), "new", "New Name").Return(nil)

	user, err := service.GetOrCreateUser(ctx, 123456, "new", "New Name")

	require.NoError(t, err)
	assert.Equal(t, "new", user.Username)
	assert.Equal(t, "New Name", user.FullName)

	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)
	mockFactory, mockUoW := setupUnitOfWork(ctx, true, mockUserRepo, mockPublisher)

	service := NewUserService(mockFactory)

	newUser := &models.User{
		TelegramID: 123456,
		Username:   "newuser",
		Level:      1,
	}

	mockUserRepo.On("GetByTelegramID", ctx, int64(123456)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(123456), "newuser", "").Return(newUser, nil)
	mockPublisher.On("Publish", events.UserCreatedEvent{UserID: 123456, Username: "newuser"}).Return()

	user, err := service.GetOrCreateUser(ctx, 123456, "newuser", "")

	assert.NoError(t, err)
	assert.Equal(t, newUser, user)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_CreateError(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockFactory, mockUoW := setupUnitOfWork(ctx, false, mockUserRepo)

	service := NewUserService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(123456)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(123456), "newuser", "").Return(nil, errors.New("database error"))

	user, err := service.GetOrCreateUser(ctx, 123456, "newuser", "")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "failed to create user")

	mockUoW.AssertExpectations(t)
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestUserService_GetOrCreateUser_BeginError(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)

	service := NewUserService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(errors.New("connection refused"))

	user, err := service.GetOrCreateUser(ctx, 123456, "newuser", "")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockFactory, _ := setupUnitOfWork(ctx, false, mockUserRepo)

	service := NewUserService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(42)).Return(nil, nil)

	user, err := service.GetUser(ctx, 42)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_GrantExperience_LevelUp(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)
	mockFactory, mockUoW := setupUnitOfWork(ctx, true, mockUserRepo, mockPublisher)

	service := NewUserService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(7)).Return(&models.User{TelegramID: 7, Level: 1, Experience: 95}, nil)
	mockUserRepo.On("AddExperience", ctx, int64(7), models.XPThreadCreated).Return(int64(105), 1, nil)
	mockUserRepo.On("SetLevel", ctx, int64(7), 2).Return(nil)
	mockPublisher.On("Publish", events.LevelUpEvent{
		UserID:     7,
		OldLevel:   1,
		NewLevel:   2,
		Experience: 105,
	}).Return()

	user, err := service.GrantExperience(ctx, 7, models.XPThreadCreated)

	require.NoError(t, err)
	assert.Equal(t, int64(105), user.Experience)
	assert.Equal(t, 2, user.Level)

	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_GrantExperience_SameLevel(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)
	mockFactory, mockUoW := setupUnitOfWork(ctx, true, mockUserRepo, mockPublisher)

	service := NewUserService(mockFactory)

	mockUserRepo.On("GetByTelegramID", ctx, int64(7)).Return(&models.User{TelegramID: 7, Level: 1, Experience: 10}, nil)
	mockUserRepo.On("AddExperience", ctx, int64(7), models.XPReplyPosted).Return(int64(15), 1, nil)

	user, err := service.GrantExperience(ctx, 7, models.XPReplyPosted)

	require.NoError(t, err)
	assert.Equal(t, 1, user.Level)

	mockUoW.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "SetLevel", mock.Anything, mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUserService_GetRankings_UnknownCriteriaFallsBack(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockFactory, _ := setupUnitOfWork(ctx, false, mockUserRepo)

	service := NewUserService(mockFactory)

	leaders := []*models.User{{TelegramID: 1}, {TelegramID: 2}}
	mockUserRepo.On("GetRankings", ctx, models.RankByReputation, 10).Return(leaders, nil)

	users, err := service.GetRankings(ctx, models.RankingCriteria("balance"), 10)

	require.NoError(t, err)
	assert.Equal(t, leaders, users)
	mockUserRepo.AssertExpectations(t)
}
