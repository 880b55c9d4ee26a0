package bot

import (
	"context"

	"clubhouse/bot/cards"
	"clubhouse/events"
	"clubhouse/models"

	log "github.com/sirupsen/logrus"
)

// Subscribe registers the handlers that push notifications to users and admins
func (b *Bot) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypePaymentSubmitted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.PaymentSubmittedEvent); ok {
			b.notifyAdmins(ctx, cards.PaymentPending(&models.PendingPayment{
				UserID:     e.UserID,
				Name:       e.Name,
				Code:       e.Code,
				PackageKey: e.PackageKey,
				Price:      e.Price,
			}))
		}
	})

	bus.Subscribe(events.EventTypePaymentApproved, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.PaymentApprovedEvent); ok {
			b.notify(ctx, e.UserID, cards.PaymentApproved())
		}
	})

	bus.Subscribe(events.EventTypePaymentRejected, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.PaymentRejectedEvent); ok {
			b.notify(ctx, e.UserID, cards.PaymentRejected())
		}
	})

	bus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.LevelUpEvent); ok {
			b.notify(ctx, e.UserID, cards.LevelUp(e.NewLevel))
		}
	})

	bus.Subscribe(events.EventTypeBadgeAwarded, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BadgeAwardedEvent); ok {
			b.notify(ctx, e.UserID, cards.BadgeEarned(e.BadgeName))
		}
	})
}

func (b *Bot) notifyAdmins(ctx context.Context, card cards.Card) {
	ids, err := b.adminService.ListAdminIDs(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list admins for notification")
		return
	}
	for _, id := range ids {
		b.notify(ctx, id, card)
	}
}

func (b *Bot) notify(ctx context.Context, userID int64, card cards.Card) {
	if err := b.messenger.Notify(ctx, userID, card); err != nil {
		log.WithFields(log.Fields{
			"recipient": userID,
			"error":     err,
		}).Warn("Failed to deliver notification")
	}
}
