package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan PaymentApprovedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	mainBus.Subscribe(EventTypePaymentApproved, func(ctx context.Context, event Event) {
		defer wg.Done()
		if approved, ok := event.(PaymentApprovedEvent); ok {
			eventReceived <- approved
		} else {
			t.Errorf("Expected PaymentApprovedEvent, got %T", event)
		}
	})

	testEvent := PaymentApprovedEvent{
		UserID:     123456,
		PackageKey: "single",
		ApprovedBy: 6501240419,
	}

	transactionalBus.Publish(testEvent)

	err := transactionalBus.Flush(context.Background())
	assert.NoError(t, err)

	wg.Wait()

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan ThreadCreatedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeThreadCreated, func(ctx context.Context, event Event) {
		defer wg.Done()
		if created, ok := event.(ThreadCreatedEvent); ok {
			eventsReceived <- created
		}
	})

	published := []ThreadCreatedEvent{
		{ThreadID: 1, ForumID: 1, CreatorID: 10, Title: "First", ThreadsCreated: 1},
		{ThreadID: 2, ForumID: 1, CreatorID: 20, Title: "Second", ThreadsCreated: 1},
		{ThreadID: 3, ForumID: 2, CreatorID: 30, Title: "Third", ThreadsCreated: 4},
	}
	for _, e := range published {
		transactionalBus.Publish(e)
	}

	require.NoError(t, transactionalBus.Flush(context.Background()))
	wg.Wait()

	threadIDs := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		select {
		case e := <-eventsReceived:
			threadIDs[e.ThreadID] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(threadIDs))
		}
	}

	assert.True(t, threadIDs[1])
	assert.True(t, threadIDs[2])
	assert.True(t, threadIDs[3])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)
	mainBus.Subscribe(EventTypeTournamentJoined, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	transactionalBus.Publish(TournamentJoinedEvent{TournamentID: 7, UserID: 42, CurrentTeams: 3})
	transactionalBus.Discard()

	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	delivered := make(chan struct{}, 1)
	bus.Subscribe(EventTypeBadgeAwarded, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeBadgeAwarded, func(ctx context.Context, event Event) {
		delivered <- struct{}{}
	})

	bus.Emit(context.Background(), BadgeAwardedEvent{UserID: 1, BadgeName: "Active Member"})

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second handler was not called")
	}
}

func TestTransactionalBus_FlushDetachesContext(t *testing.T) {
	bus := NewBus()
	transactionalBus := NewTransactionalBus(bus)

	errs := make(chan error, 1)
	bus.Subscribe(EventTypeUserFollowed, func(ctx context.Context, event Event) {
		errs <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	transactionalBus.Publish(UserFollowedEvent{FollowerID: 1, FollowedID: 2, FollowingCount: 1})
	require.NoError(t, transactionalBus.Flush(ctx))
	cancel()

	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
}
