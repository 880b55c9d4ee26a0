package common

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/bot/cards"
	"clubhouse/flow"
)

// StartFlow begins a wizard and returns the card for its first question.
// A user already inside another wizard is told to cancel it first.
func StartFlow(ctx context.Context, flows *flow.Controller, userID int64, kind flow.Kind, seed map[string]string) (cards.Card, error) {
	out, err := flows.Start(ctx, userID, kind, seed)
	if errors.Is(err, flow.ErrFlowActive) {
		return cards.FlowActive(), nil
	}
	if err != nil {
		return cards.Card{}, InternalError(fmt.Sprintf("failed to start %s flow", kind), err)
	}
	return cards.FlowPrompt(out.Text), nil
}

// RestartFlow replaces an active wizard of the same kind before starting a new one
func RestartFlow(ctx context.Context, flows *flow.Controller, userID int64, kind flow.Kind, seed map[string]string) (cards.Card, error) {
	active, err := flows.Active(ctx, userID)
	if err != nil {
		return cards.Card{}, InternalError("failed to load flow state", err)
	}
	if active != nil && active.Kind == kind {
		if _, err := flows.Cancel(ctx, userID); err != nil {
			return cards.Card{}, InternalError("failed to clear flow state", err)
		}
	}
	return StartFlow(ctx, flows, userID, kind, seed)
}
