package bot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/events"
	"clubhouse/flow"
	"clubhouse/models"
	"clubhouse/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testBot struct {
	bot       *Bot
	messenger *recordingMessenger
	users     *MockUserService
	admins    *MockAdminService
	payments  *MockPaymentService
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()

	users := new(MockUserService)
	admins := new(MockAdminService)
	payments := new(MockPaymentService)
	messenger := newRecordingMessenger()

	flows := flow.NewController(flow.NewMemoryStore(), users, time.Minute, flow.PaymentCodeFlow(payments))
	b := New(
		Config{SupportContact: "@support", BroadcastRatePerSec: 1000},
		Services{Users: users, Admins: admins, Payments: payments},
		flows,
		messenger,
	)

	return &testBot{bot: b, messenger: messenger, users: users, admins: admins, payments: payments}
}

func (tb *testBot) withUser(user *models.User) {
	tb.users.On("GetOrCreateUser", mock.Anything, user.TelegramID, mock.Anything, mock.Anything).Return(user, nil)
}

func (tb *testBot) send(t *testing.T, userID int64, text string) cards.Card {
	t.Helper()
	require.NoError(t, tb.bot.Handle(context.Background(), NewMessageUpdate(userID, userID, text)))
	return tb.messenger.lastSent()
}

func TestHandle_UnknownCallbackEditsInPlace(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1, Username: "alice"})

	err := tb.bot.Handle(context.Background(), NewCallbackUpdate(1, 1, 42, "bogus_token"))
	require.NoError(t, err)

	require.Len(t, tb.messenger.edited, 1)
	assert.Empty(t, tb.messenger.sent)
	assert.Equal(t, int64(42), tb.messenger.edited[0].MessageID)
	assert.Equal(t, cards.UnknownCommand(), tb.messenger.edited[0].Card)
}

func TestHandle_UnparseableIDIsUnknown(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})

	err := tb.bot.Handle(context.Background(), NewCallbackUpdate(1, 1, 42, "tournament_view_abc"))
	require.NoError(t, err)

	require.Len(t, tb.messenger.edited, 1)
	assert.Equal(t, cards.UnknownCommand(), tb.messenger.edited[0].Card)
}

func TestHandle_UnknownCommand(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})

	assert.Equal(t, cards.UnknownCommand(), tb.send(t, 1, "/doesnotexist"))
}

func TestHandle_TextWithoutFlowShowsHelp(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})

	assert.Equal(t, cards.Help(), tb.send(t, 1, "hello there"))
}

func TestHandle_UserLoadFailureShowsGenericError(t *testing.T) {
	tb := newTestBot(t)
	tb.users.On("GetOrCreateUser", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	assert.Equal(t, cards.Error(common.GenericErrorMessage), tb.send(t, 1, "/menu"))
}

func TestHandle_EditFailureFallsBackToSend(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.messenger.failEdits = true

	err := tb.bot.Handle(context.Background(), NewCallbackUpdate(1, 1, 42, cards.TokenHelp))
	require.NoError(t, err)

	assert.Empty(t, tb.messenger.edited)
	assert.Equal(t, cards.Help(), tb.messenger.lastSent())
}

func TestHandle_NonAdminIsRejected(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.admins.On("IsAdmin", mock.Anything, int64(1)).Return(false, nil)

	assert.Equal(t, cards.AdminOnly(), tb.send(t, 1, "/approve 5"))
	assert.Equal(t, cards.AdminOnly(), tb.send(t, 1, "/setprice single 100"))
	assert.Equal(t, cards.AdminOnly(), tb.send(t, 1, "/broadcast"))

	tb.payments.AssertNotCalled(t, "ApprovePayment", mock.Anything, mock.Anything, mock.Anything)
	tb.payments.AssertNotCalled(t, "SetPrice", mock.Anything, mock.Anything, mock.Anything)

	// the rejected broadcast must not leave a flow behind
	assert.Equal(t, cards.Help(), tb.send(t, 1, "hello everyone"))
}

func TestHandle_Approve(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.admins.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	tb.payments.On("ApprovePayment", mock.Anything, int64(1), int64(5)).
		Return(&models.PendingPayment{UserID: 5, PackageKey: "single"}, nil)
	tb.payments.On("ApprovePayment", mock.Anything, int64(1), int64(6)).
		Return(nil, service.ErrPaymentNotFound)

	assert.Equal(t, cards.Message("✅ Approved payment for user ID: 5"), tb.send(t, 1, "/approve 5"))
	assert.Equal(t, cards.Message("❌ No pending payment for user 6."), tb.send(t, 1, "/approve 6"))
	assert.Equal(t, cards.Message("❌ User ID must be a number."), tb.send(t, 1, "/approve bob"))
	assert.Equal(t, cards.Message("⚙️ Usage: `/approve <user_id>`"), tb.send(t, 1, "/approve"))

	tb.payments.AssertNumberOfCalls(t, "ApprovePayment", 2)
}

func TestHandle_AddAdminRequiresSuperAdmin(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 2})
	tb.admins.On("IsSuperAdmin", int64(2)).Return(false)

	assert.Equal(t, cards.Message("🚫 Only the main admin can add new admins."), tb.send(t, 2, "/addadmin 7"))
	tb.admins.AssertNotCalled(t, "AddAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_PaymentCodeFlow(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1, Username: "alice"})
	tb.users.On("GetUser", mock.Anything, int64(1)).Return(&models.User{TelegramID: 1, Username: "alice"}, nil)
	tb.payments.On("GetPackage", mock.Anything, models.DefaultPackageKey).
		Return(&models.Package{Key: "single", Name: "Single Paper", Price: 2000}, nil)

	pending := &models.PendingPayment{UserID: 1, Name: "alice", Code: "QJD7H4XYZ1", PackageKey: "single", Price: 2000}
	tb.payments.On("SubmitPayment", mock.Anything, int64(1), "alice", "QJD7H4XYZ1").Return(pending, nil).Once()

	prompt := tb.send(t, 1, "/checkpayment")
	assert.Equal(t, [][]cards.Button{{{Label: "❌ Cancel", Token: cards.TokenCancel}}}, prompt.Rows)

	reprompt := tb.send(t, 1, "not a code")
	assert.Contains(t, reprompt.Text, "Invalid code format")
	tb.payments.AssertNotCalled(t, "SubmitPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, cards.PaymentReceived(pending), tb.send(t, 1, "QJD7H4XYZ1"))
	tb.payments.AssertExpectations(t)

	// the flow is finished, so text goes back to help
	assert.Equal(t, cards.Help(), tb.send(t, 1, "QJD7H4XYZ1"))
}

func TestHandle_PaidUserSkipsPaymentFlow(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.users.On("GetUser", mock.Anything, int64(1)).Return(&models.User{TelegramID: 1, Paid: true}, nil)

	assert.Equal(t, cards.AlreadyPaid(), tb.send(t, 1, "/checkpayment"))
	tb.payments.AssertNotCalled(t, "GetPackage", mock.Anything, mock.Anything)
}

func TestBroadcast_CountsFailedRecipients(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.admins.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	tb.users.On("GetAllUserIDs", mock.Anything).Return([]int64{1, 2, 3}, nil)
	tb.messenger.failFor[2] = true

	prompt := tb.send(t, 1, "/broadcast")
	assert.Equal(t, cards.FlowPrompt("📢 Please send the message you want to broadcast to all users:"), prompt)

	done := tb.send(t, 1, "Mock exams start *Monday*")
	assert.Equal(t, cards.BroadcastDone(2, 3), done)

	require.Equal(t, 2, tb.messenger.notifiedCount())
	assert.Equal(t, int64(1), tb.messenger.notified[0].ChatID)
	assert.Equal(t, int64(3), tb.messenger.notified[1].ChatID)
	assert.Equal(t, "Mock exams start \\*Monday\\*", tb.messenger.notified[0].Card.Text)
}

func TestHandle_CancelClearsFlow(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.admins.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)

	tb.send(t, 1, "/broadcast")

	err := tb.bot.Handle(context.Background(), NewCallbackUpdate(1, 1, 9, cards.TokenCancel))
	require.NoError(t, err)
	require.Len(t, tb.messenger.edited, 1)
	assert.Equal(t, cards.Cancelled(), tb.messenger.edited[0].Card)

	assert.Equal(t, cards.Help(), tb.send(t, 1, "this is not broadcast"))
	tb.users.AssertNotCalled(t, "GetAllUserIDs", mock.Anything)
}

func TestHandle_SecondFlowIsRefused(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.admins.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	tb.users.On("GetUser", mock.Anything, int64(1)).Return(&models.User{TelegramID: 1}, nil)
	tb.payments.On("GetPackage", mock.Anything, models.DefaultPackageKey).
		Return(&models.Package{Key: "single", Name: "Single Paper", Price: 2000}, nil)

	tb.send(t, 1, "/broadcast")
	assert.Equal(t, cards.FlowActive(), tb.send(t, 1, "/checkpayment"))
}

func TestSubscribe_Notifications(t *testing.T) {
	tb := newTestBot(t)
	tb.admins.On("ListAdminIDs", mock.Anything).Return([]int64{10, 11}, nil)

	bus := events.NewBus()
	tb.bot.Subscribe(bus)

	bus.Emit(context.Background(), events.PaymentSubmittedEvent{
		UserID:     5,
		Name:       "bob",
		Code:       "QJD7H4XYZ1",
		PackageKey: "single",
		Price:      2000,
	})
	bus.Emit(context.Background(), events.PaymentApprovedEvent{UserID: 5, PackageKey: "single", ApprovedBy: 10})

	assert.Eventually(t, func() bool {
		return tb.messenger.notifiedCount() == 3
	}, time.Second, 10*time.Millisecond)

	tb.messenger.mu.Lock()
	defer tb.messenger.mu.Unlock()

	recipients := map[int64]int{}
	for _, n := range tb.messenger.notified {
		recipients[n.ChatID]++
	}
	assert.Equal(t, map[int64]int{10: 1, 11: 1, 5: 1}, recipients)
}

func TestUserLocks_SerialisePerUser(t *testing.T) {
	locks := newUserLocks()

	var inside int32
	var overlapped atomic.Bool
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(7)
			defer unlock()

			if atomic.AddInt32(&inside, 1) > 1 {
				overlapped.Store(true)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.False(t, overlapped.Load())
	assert.Equal(t, 0, locks.size())
}

func TestSequencer_KeepsUserOrder(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	tb.bot.flows.Register(flow.TournamentFlow(nil))

	ctx := context.Background()
	_, err := tb.bot.flows.Start(ctx, 1, flow.KindTournament, nil)
	require.NoError(t, err)

	seq := NewSequencer()
	seq.Submit(1, func() {
		// Slow first answer; the second must still wait for it
		time.Sleep(20 * time.Millisecond)
		assert.NoError(t, tb.bot.Handle(ctx, NewMessageUpdate(1, 1, "Champions Cup")))
	})
	seq.Submit(1, func() {
		assert.NoError(t, tb.bot.Handle(ctx, NewMessageUpdate(1, 1, "FIFA 24")))
	})
	seq.Wait()

	state, err := tb.bot.flows.Active(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Step)
	assert.Equal(t, "Champions Cup", state.Fields[flow.FieldName])
	assert.Equal(t, "FIFA 24", state.Fields[flow.FieldGame])
	assert.Len(t, tb.messenger.sent, 2)
}

func TestSequencer_RunsUsersIndependently(t *testing.T) {
	seq := NewSequencer()

	var mu sync.Mutex
	order := map[int64][]int{}
	release := make(chan struct{})

	// User 1 is blocked; user 2 must not wait behind it
	seq.Submit(1, func() { <-release })
	for i := 0; i < 50; i++ {
		for _, user := range []int64{1, 2} {
			seq.Submit(user, func() {
				mu.Lock()
				order[user] = append(order[user], i)
				mu.Unlock()
			})
		}
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order[2]) == 50 && len(order[1]) == 0
	}, time.Second, 5*time.Millisecond)

	close(release)
	seq.Wait()

	for _, user := range []int64{1, 2} {
		require.Len(t, order[user], 50)
		for i, got := range order[user] {
			assert.Equal(t, i, got)
		}
	}
	assert.Equal(t, 0, seq.size())
}

func TestHandle_SharedChatOutsideFlowIsIgnored(t *testing.T) {
	tb := newTestBot(t)
	tb.withUser(&models.User{TelegramID: 1})
	ctx := context.Background()

	chatter := NewMessageUpdate(1, -500, "anyone up for a match?")
	chatter.Shared = true
	require.NoError(t, tb.bot.Handle(ctx, chatter))

	assert.Empty(t, tb.messenger.sent)
	tb.users.AssertNotCalled(t, "GetOrCreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err := tb.bot.flows.Start(ctx, 1, flow.KindPaymentCode, nil)
	require.NoError(t, err)

	answer := NewMessageUpdate(1, -500, "not a code")
	answer.Shared = true
	require.NoError(t, tb.bot.Handle(ctx, answer))

	require.Len(t, tb.messenger.sent, 1)
	assert.Equal(t, int64(-500), tb.messenger.sent[0].ChatID)
	assert.Equal(t, cards.FlowPrompt("⚠️ Invalid code format. Please send the correct M-Pesa code (e.g., QJD7H4XYZ1)."), tb.messenger.sent[0].Card)
}

func TestBroadcast_OutlivesCancelledRequest(t *testing.T) {
	tb := newTestBot(t)
	tb.users.On("GetAllUserIDs", mock.Anything).Return([]int64{1, 2, 3}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := tb.bot.Broadcast(ctx, 1, "Results are out")
	require.NoError(t, err)
	assert.Equal(t, &flow.BroadcastResult{Delivered: 3, Total: 3}, result)
	assert.Equal(t, 3, tb.messenger.notifiedCount())
}
