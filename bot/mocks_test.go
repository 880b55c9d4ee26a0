package bot

import (
	"context"
	"errors"
	"sync"

	"clubhouse/bot/cards"
	"clubhouse/models"

	"github.com/stretchr/testify/mock"
)

type sentCard struct {
	ChatID    int64
	MessageID int64
	Card      cards.Card
}

// recordingMessenger captures outbound cards. Recipients in failFor reject Notify.
type recordingMessenger struct {
	mu        sync.Mutex
	sent      []sentCard
	edited    []sentCard
	notified  []sentCard
	failFor   map[int64]bool
	failEdits bool
}

func newRecordingMessenger() *recordingMessenger {
	return &recordingMessenger{failFor: make(map[int64]bool)}
}

func (m *recordingMessenger) Send(ctx context.Context, chatID int64, card cards.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentCard{ChatID: chatID, Card: card})
	return nil
}

func (m *recordingMessenger) Edit(ctx context.Context, chatID, messageID int64, card cards.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failEdits {
		return errors.New("message is not modified")
	}
	m.edited = append(m.edited, sentCard{ChatID: chatID, MessageID: messageID, Card: card})
	return nil
}

func (m *recordingMessenger) Notify(ctx context.Context, userID int64, card cards.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[userID] {
		return errors.New("bot was blocked by the user")
	}
	m.notified = append(m.notified, sentCard{ChatID: userID, Card: card})
	return nil
}

func (m *recordingMessenger) lastSent() cards.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return cards.Card{}
	}
	return m.sent[len(m.sent)-1].Card
}

func (m *recordingMessenger) notifiedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notified)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error) {
	args := m.Called(ctx, telegramID, username, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GrantExperience(ctx context.Context, telegramID int64, amount int64) (*models.User, error) {
	args := m.Called(ctx, telegramID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetRankings(ctx context.Context, criteria models.RankingCriteria, limit int) ([]*models.User, error) {
	args := m.Called(ctx, criteria, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) FindPlayers(ctx context.Context, viewerID int64, limit int) ([]*models.User, error) {
	args := m.Called(ctx, viewerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) GetQuickStats(ctx context.Context) (*models.QuickStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuickStats), args.Error(1)
}

func (m *MockUserService) GetAllUserIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	args := m.Called(ctx, telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminService) IsSuperAdmin(telegramID int64) bool {
	args := m.Called(telegramID)
	return args.Bool(0)
}

func (m *MockAdminService) AddAdmin(ctx context.Context, actorID, telegramID int64) error {
	args := m.Called(ctx, actorID, telegramID)
	return args.Error(0)
}

func (m *MockAdminService) RemoveAdmin(ctx context.Context, actorID, telegramID int64) error {
	args := m.Called(ctx, actorID, telegramID)
	return args.Error(0)
}

func (m *MockAdminService) ListAdminIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPackages(ctx context.Context) ([]*models.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Package), args.Error(1)
}

func (m *MockPaymentService) GetPackage(ctx context.Context, key string) (*models.Package, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockPaymentService) SetPrice(ctx context.Context, key string, price int64) (*models.Package, error) {
	args := m.Called(ctx, key, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockPaymentService) BookPackage(ctx context.Context, userID int64, key string) (*models.Package, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockPaymentService) SubmitPayment(ctx context.Context, userID int64, name, code string) (*models.PendingPayment, error) {
	args := m.Called(ctx, userID, name, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentService) ListPending(ctx context.Context) ([]*models.PendingPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentService) CountPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentService) ApprovePayment(ctx context.Context, adminID, userID int64) (*models.PendingPayment, error) {
	args := m.Called(ctx, adminID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *MockPaymentService) RejectPayment(ctx context.Context, adminID, userID int64) (*models.PendingPayment, error) {
	args := m.Called(ctx, adminID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *MockAdminService) SeedAdmins(ctx context.Context, telegramIDs []int64) (int, error) {
	args := m.Called(ctx, telegramIDs)
	return args.Int(0), args.Error(1)
}
