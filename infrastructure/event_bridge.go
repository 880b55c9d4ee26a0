package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clubhouse/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const sourceService = "clubhouse"

// Publisher is the part of NATSClient the bridge needs
type Publisher interface {
	Publish(ctx context.Context, subject, msgID string, data []byte) error
}

// EventEnvelope wraps an event payload on the wire
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"source_service"`
	Payload       json.RawMessage `json:"payload"`
}

// EventBridge forwards every in-process event to NATS
type EventBridge struct {
	publisher Publisher
	now       func() time.Time
}

func NewEventBridge(publisher Publisher) *EventBridge {
	return &EventBridge{
		publisher: publisher,
		now:       time.Now,
	}
}

// Subject returns the subject an event type is published on
func Subject(eventType events.EventType) string {
	return EventSubjectPrefix + string(eventType)
}

// Attach subscribes the bridge to every event type on bus
func (b *EventBridge) Attach(bus *events.Bus) {
	for _, eventType := range events.AllEventTypes {
		bus.Subscribe(eventType, b.forward)
	}
	log.WithField("eventTypes", len(events.AllEventTypes)).Info("Event bridge attached")
}

func (b *EventBridge) forward(ctx context.Context, event events.Event) {
	if err := b.Publish(ctx, event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Warn("Failed to forward event to NATS")
	}
}

// Publish wraps event in an envelope and sends it
func (b *EventBridge) Publish(ctx context.Context, event events.Event) error {
	envelope, err := b.envelope(event)
	if err != nil {
		return err
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	return b.publisher.Publish(ctx, Subject(event.Type()), envelope.EventID, data)
}

func (b *EventBridge) envelope(event events.Event) (*EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     b.now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}, nil
}
