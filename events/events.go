package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated         EventType = "user_created"
	EventTypeLevelUp             EventType = "level_up"
	EventTypeThreadCreated       EventType = "thread_created"
	EventTypeReplyPosted         EventType = "reply_posted"
	EventTypeTournamentCreated   EventType = "tournament_created"
	EventTypeTournamentJoined    EventType = "tournament_joined"
	EventTypeTournamentCompleted EventType = "tournament_completed"
	EventTypeUserFollowed        EventType = "user_followed"
	EventTypeBadgeAwarded        EventType = "badge_awarded"
	EventTypePaymentSubmitted    EventType = "payment_submitted"
	EventTypePaymentApproved     EventType = "payment_approved"
	EventTypePaymentRejected     EventType = "payment_rejected"
)

// AllEventTypes lists every event type, used by bridges that forward everything
var AllEventTypes = []EventType{
	EventTypeUserCreated,
	EventTypeLevelUp,
	EventTypeThreadCreated,
	EventTypeReplyPosted,
	EventTypeTournamentCreated,
	EventTypeTournamentJoined,
	EventTypeTournamentCompleted,
	EventTypeUserFollowed,
	EventTypeBadgeAwarded,
	EventTypePaymentSubmitted,
	EventTypePaymentApproved,
	EventTypePaymentRejected,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent is emitted the first time a user interacts with the bot
type UserCreatedEvent struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// LevelUpEvent is emitted when granted experience crosses a level boundary
type LevelUpEvent struct {
	UserID     int64 `json:"user_id"`
	OldLevel   int   `json:"old_level"`
	NewLevel   int   `json:"new_level"`
	Experience int64 `json:"experience"`
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// ThreadCreatedEvent is emitted after a thread is committed
type ThreadCreatedEvent struct {
	ThreadID       int64  `json:"thread_id"`
	ForumID        int64  `json:"forum_id"`
	CreatorID      int64  `json:"creator_id"`
	Title          string `json:"title"`
	ThreadsCreated int    `json:"threads_created"`
}

func (e ThreadCreatedEvent) Type() EventType {
	return EventTypeThreadCreated
}

// ReplyPostedEvent is emitted after a reply is committed
type ReplyPostedEvent struct {
	ReplyID       int64 `json:"reply_id"`
	ThreadID      int64 `json:"thread_id"`
	UserID        int64 `json:"user_id"`
	RepliesPosted int   `json:"replies_posted"`
}

func (e ReplyPostedEvent) Type() EventType {
	return EventTypeReplyPosted
}

// TournamentCreatedEvent is emitted after a tournament is committed
type TournamentCreatedEvent struct {
	TournamentID int64  `json:"tournament_id"`
	CreatorID    int64  `json:"creator_id"`
	Name         string `json:"name"`
	MaxTeams     int    `json:"max_teams"`
}

func (e TournamentCreatedEvent) Type() EventType {
	return EventTypeTournamentCreated
}

// TournamentJoinedEvent is emitted when a user joins a tournament
type TournamentJoinedEvent struct {
	TournamentID int64 `json:"tournament_id"`
	UserID       int64 `json:"user_id"`
	CurrentTeams int   `json:"current_teams"`
}

func (e TournamentJoinedEvent) Type() EventType {
	return EventTypeTournamentJoined
}

// TournamentCompletedEvent is emitted when an admin records a winner
type TournamentCompletedEvent struct {
	TournamentID int64 `json:"tournament_id"`
	WinnerID     int64 `json:"winner_id"`
}

func (e TournamentCompletedEvent) Type() EventType {
	return EventTypeTournamentCompleted
}

// UserFollowedEvent is emitted when one user follows another
type UserFollowedEvent struct {
	FollowerID     int64 `json:"follower_id"`
	FollowedID     int64 `json:"followed_id"`
	FollowingCount int   `json:"following_count"`
}

func (e UserFollowedEvent) Type() EventType {
	return EventTypeUserFollowed
}

// BadgeAwardedEvent is emitted when a badge is granted to a user
type BadgeAwardedEvent struct {
	UserID    int64  `json:"user_id"`
	BadgeName string `json:"badge_name"`
}

func (e BadgeAwardedEvent) Type() EventType {
	return EventTypeBadgeAwarded
}

// PaymentSubmittedEvent is emitted when a payment code enters the pending queue
type PaymentSubmittedEvent struct {
	UserID     int64  `json:"user_id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	PackageKey string `json:"package_key"`
	Price      int64  `json:"price"`
}

func (e PaymentSubmittedEvent) Type() EventType {
	return EventTypePaymentSubmitted
}

// PaymentApprovedEvent is emitted when an admin approves a pending payment
type PaymentApprovedEvent struct {
	UserID     int64  `json:"user_id"`
	PackageKey string `json:"package_key"`
	ApprovedBy int64  `json:"approved_by"`
}

func (e PaymentApprovedEvent) Type() EventType {
	return EventTypePaymentApproved
}

// PaymentRejectedEvent is emitted when an admin rejects a pending payment
type PaymentRejectedEvent struct {
	UserID     int64 `json:"user_id"`
	RejectedBy int64 `json:"rejected_by"`
}

func (e PaymentRejectedEvent) Type() EventType {
	return EventTypePaymentRejected
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run on their
// own goroutines and a panicking handler does not affect the others.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits the pending events on the real bus. Called after commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Handlers outlive the request, so they get a detached context
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}

	log.WithField("eventCount", len(b.pending)).Debug("Flushed transactional events")
	b.pending = nil
	return nil
}

// Discard drops the pending events. Called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
