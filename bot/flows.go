package bot

import (
	"context"
	"errors"
	"strconv"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/flow"
	"clubhouse/models"
	"clubhouse/service"
)

// advanceFlow feeds free text into the user's wizard. Users without one get the help card.
func (b *Bot) advanceFlow(ctx context.Context, u *Update) (cards.Card, error) {
	out, err := b.flows.Advance(ctx, u.UserID, u.Text)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to advance flow", err)
	}

	switch out.Status {
	case flow.StatusIdle:
		return b.menu.Help(), nil
	case flow.StatusPrompt, flow.StatusReprompt:
		return cards.FlowPrompt(out.Text), nil
	case flow.StatusFailed:
		return cards.Error(flowFailureMessage(out)), nil
	}

	return flowCompletedCard(out), nil
}

func flowFailureMessage(out *flow.Outcome) string {
	switch {
	case errors.Is(out.Err, service.ErrThreadLocked):
		return "🔒 This thread is locked."
	case errors.Is(out.Err, service.ErrNotFound) && out.Kind == flow.KindThread:
		return "❌ Forum not found."
	case errors.Is(out.Err, service.ErrNotFound) && out.Kind == flow.KindReply:
		return "❌ Thread not found."
	case errors.Is(out.Err, service.ErrPackageNotFound):
		return "❌ Package not found."
	}

	switch out.Kind {
	case flow.KindTournament:
		return "❌ Error creating tournament. Please try again."
	case flow.KindThread:
		return "❌ Error creating thread. Please try again."
	case flow.KindReply:
		return "❌ Error posting reply. Please try again."
	case flow.KindPaymentCode:
		return "❌ Error saving your payment code. Please try again."
	case flow.KindBroadcast:
		return "❌ Broadcast failed. Please try again."
	}
	return common.GenericErrorMessage
}

func flowCompletedCard(out *flow.Outcome) cards.Card {
	switch result := out.Result.(type) {
	case *models.Tournament:
		return cards.TournamentCreated(result)
	case *models.Thread:
		return cards.ThreadCreated(out.Fields[flow.FieldForumName], result)
	case *models.Reply:
		forumID, _ := strconv.ParseInt(out.Fields[flow.FieldForumID], 10, 64)
		return cards.ReplyPosted(result.ThreadID, forumID)
	case *models.PendingPayment:
		return cards.PaymentReceived(result)
	case *flow.BroadcastResult:
		return cards.BroadcastDone(result.Delivered, result.Total)
	}
	return cards.Success("Done", "Your request was completed.", cards.TokenMenu)
}
