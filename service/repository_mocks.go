package service

import (
	"context"

	"clubhouse/events"
	"clubhouse/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error) {
	args := m.Called(ctx, telegramID, username, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, telegramID int64, username, fullName string) error {
	args := m.Called(ctx, telegramID, username, fullName)
	return args.Error(0)
}

func (m *MockUserRepository) AddExperience(ctx context.Context, telegramID int64, amount int64) (int64, int, error) {
	args := m.Called(ctx, telegramID, amount)
	return args.Get(0).(int64), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) SetLevel(ctx context.Context, telegramID int64, level int) error {
	args := m.Called(ctx, telegramID, level)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementCounter(ctx context.Context, telegramID int64, counter models.UserCounter, delta int) (int, error) {
	args := m.Called(ctx, telegramID, counter, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) IncrementStat(ctx context.Context, telegramID int64, counter models.StatsCounter, delta int) (int, error) {
	args := m.Called(ctx, telegramID, counter, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) SetPendingPackage(ctx context.Context, telegramID int64, packageKey string) error {
	args := m.Called(ctx, telegramID, packageKey)
	return args.Error(0)
}

func (m *MockUserRepository) MarkPaid(ctx context.Context, telegramID int64, packageKey string) error {
	args := m.Called(ctx, telegramID, packageKey)
	return args.Error(0)
}

func (m *MockUserRepository) GetRankings(ctx context.Context, criteria models.RankingCriteria, limit int) ([]*models.User, error) {
	args := m.Called(ctx, criteria, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListDiscoverable(ctx context.Context, viewerID int64, limit int) ([]*models.User, error) {
	args := m.Called(ctx, viewerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAllIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockUserRepository) GetQuickStats(ctx context.Context) (*models.QuickStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuickStats), args.Error(1)
}

// MockForumRepository is a mock implementation of ForumRepository
type MockForumRepository struct {
	mock.Mock
}

func (m *MockForumRepository) List(ctx context.Context, featuredOnly bool) ([]*models.Forum, error) {
	args := m.Called(ctx, featuredOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Forum), args.Error(1)
}

func (m *MockForumRepository) GetByID(ctx context.Context, id int64) (*models.Forum, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Forum), args.Error(1)
}

func (m *MockForumRepository) Create(ctx context.Context, forum *models.Forum) error {
	args := m.Called(ctx, forum)
	return args.Error(0)
}

func (m *MockForumRepository) IncrementThreadCount(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockForumRepository) IncrementReplyCount(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockForumRepository) Follow(ctx context.Context, userID, forumID int64) (bool, error) {
	args := m.Called(ctx, userID, forumID)
	return args.Bool(0), args.Error(1)
}

func (m *MockForumRepository) Unfollow(ctx context.Context, userID, forumID int64) (bool, error) {
	args := m.Called(ctx, userID, forumID)
	return args.Bool(0), args.Error(1)
}

func (m *MockForumRepository) ListFollowedIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockForumRepository) ListFollowed(ctx context.Context, userID int64) ([]*models.Forum, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Forum), args.Error(1)
}

// MockThreadRepository is a mock implementation of ThreadRepository
type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) Create(ctx context.Context, thread *models.Thread) error {
	args := m.Called(ctx, thread)
	return args.Error(0)
}

func (m *MockThreadRepository) GetByID(ctx context.Context, id int64) (*models.Thread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockThreadRepository) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockThreadRepository) RecordReply(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockThreadRepository) ListByForum(ctx context.Context, forumID int64, limit int) ([]*models.Thread, error) {
	args := m.Called(ctx, forumID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Thread), args.Error(1)
}

func (m *MockThreadRepository) ListByCreator(ctx context.Context, creatorID int64, limit int) ([]*models.Thread, error) {
	args := m.Called(ctx, creatorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Thread), args.Error(1)
}

// MockReplyRepository is a mock implementation of ReplyRepository
type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *MockReplyRepository) ListByThread(ctx context.Context, threadID int64, limit int) ([]*models.Reply, error) {
	args := m.Called(ctx, threadID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Reply), args.Error(1)
}

// MockTournamentRepository is a mock implementation of TournamentRepository
type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, id int64) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) List(ctx context.Context, status *models.TournamentStatus, limit int) ([]*models.Tournament, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) ListByParticipant(ctx context.Context, userID int64, limit int) ([]*models.Tournament, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) AddParticipant(ctx context.Context, tournamentID, userID int64) (bool, error) {
	args := m.Called(ctx, tournamentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentRepository) RemoveParticipant(ctx context.Context, tournamentID, userID int64) (bool, error) {
	args := m.Called(ctx, tournamentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentRepository) IsParticipant(ctx context.Context, tournamentID, userID int64) (bool, error) {
	args := m.Called(ctx, tournamentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTournamentRepository) ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participant), args.Error(1)
}

func (m *MockTournamentRepository) AdjustTeams(ctx context.Context, id int64, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockTournamentRepository) UpdateStatus(ctx context.Context, id int64, status models.TournamentStatus, winnerID *int64) error {
	args := m.Called(ctx, id, status, winnerID)
	return args.Error(0)
}

// MockBadgeRepository is a mock implementation of BadgeRepository
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) List(ctx context.Context) ([]*models.Badge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Badge), args.Error(1)
}

func (m *MockBadgeRepository) Award(ctx context.Context, userID int64, badgeName string) (bool, error) {
	args := m.Called(ctx, userID, badgeName)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserBadge), args.Error(1)
}

// MockFollowRepository is a mock implementation of FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID int64, limit int) ([]*models.User, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID int64, limit int) ([]*models.User, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockPackageRepository is a mock implementation of PackageRepository
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) List(ctx context.Context) ([]*models.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Package), args.Error(1)
}

func (m *MockPackageRepository) GetByKey(ctx context.Context, key string) (*models.Package, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockPackageRepository) UpdatePrice(ctx context.Context, key string, price int64) (bool, error) {
	args := m.Called(ctx, key, price)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Upsert(ctx context.Context, payment *models.PendingPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByUser(ctx context.Context, userID int64) (*models.PendingPayment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]*models.PendingPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) DeleteByUser(ctx context.Context, userID int64) (*models.PendingPayment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

// MockAdminRepository is a mock implementation of AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Exists(ctx context.Context, telegramID int64) (bool, error) {
	args := m.Called(ctx, telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Add(ctx context.Context, telegramID int64, addedBy int64) (bool, error) {
	args := m.Called(ctx, telegramID, addedBy)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Remove(ctx context.Context, telegramID int64) (bool, error) {
	args := m.Called(ctx, telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Admin), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// Published returns the events passed to Publish in call order
func (m *MockEventPublisher) Published() []events.Event {
	var published []events.Event
	for _, call := range m.Calls {
		if call.Method == "Publish" {
			published = append(published, call.Arguments.Get(0).(events.Event))
		}
	}
	return published
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Transaction control is
// mocked; repository getters return whatever SetRepositories configured.
type MockUnitOfWork struct {
	mock.Mock

	userRepo       UserRepository
	forumRepo      ForumRepository
	threadRepo     ThreadRepository
	replyRepo      ReplyRepository
	tournamentRepo TournamentRepository
	badgeRepo      BadgeRepository
	followRepo     FollowRepository
	packageRepo    PackageRepository
	paymentRepo    PaymentRepository
	adminRepo      AdminRepository
	eventBus       EventPublisher
}

// SetRepositories wires mock repositories and the event publisher by type. Nil
// values are skipped.
func (m *MockUnitOfWork) SetRepositories(deps ...any) {
	for _, dep := range deps {
		switch d := dep.(type) {
		case *MockUserRepository:
			if d != nil {
				m.userRepo = d
			}
		case *MockForumRepository:
			if d != nil {
				m.forumRepo = d
			}
		case *MockThreadRepository:
			if d != nil {
				m.threadRepo = d
			}
		case *MockReplyRepository:
			if d != nil {
				m.replyRepo = d
			}
		case *MockTournamentRepository:
			if d != nil {
				m.tournamentRepo = d
			}
		case *MockBadgeRepository:
			if d != nil {
				m.badgeRepo = d
			}
		case *MockFollowRepository:
			if d != nil {
				m.followRepo = d
			}
		case *MockPackageRepository:
			if d != nil {
				m.packageRepo = d
			}
		case *MockPaymentRepository:
			if d != nil {
				m.paymentRepo = d
			}
		case *MockAdminRepository:
			if d != nil {
				m.adminRepo = d
			}
		case *MockEventPublisher:
			if d != nil {
				m.eventBus = d
			}
		}
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository             { return m.userRepo }
func (m *MockUnitOfWork) ForumRepository() ForumRepository           { return m.forumRepo }
func (m *MockUnitOfWork) ThreadRepository() ThreadRepository         { return m.threadRepo }
func (m *MockUnitOfWork) ReplyRepository() ReplyRepository           { return m.replyRepo }
func (m *MockUnitOfWork) TournamentRepository() TournamentRepository { return m.tournamentRepo }
func (m *MockUnitOfWork) BadgeRepository() BadgeRepository           { return m.badgeRepo }
func (m *MockUnitOfWork) FollowRepository() FollowRepository         { return m.followRepo }
func (m *MockUnitOfWork) PackageRepository() PackageRepository       { return m.packageRepo }
func (m *MockUnitOfWork) PaymentRepository() PaymentRepository       { return m.paymentRepo }
func (m *MockUnitOfWork) AdminRepository() AdminRepository           { return m.adminRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher                   { return m.eventBus }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
