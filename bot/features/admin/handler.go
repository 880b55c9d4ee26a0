package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/flow"
	"clubhouse/service"

	log "github.com/sirupsen/logrus"
)

// authorize reports whether userID may run admin commands
func (f *Feature) authorize(ctx context.Context, userID int64) (bool, error) {
	ok, err := f.adminService.IsAdmin(ctx, userID)
	if err != nil {
		return false, common.InternalError("failed to check admin status", err)
	}
	if !ok {
		log.WithFields(log.Fields{
			"user_id": userID,
			"error":   service.ErrNotAdmin,
		}).Warn("Rejected admin command")
	}
	return ok, nil
}

func (f *Feature) Panel(ctx context.Context, userID int64) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}

	stats, err := f.userService.GetQuickStats(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load community stats", err)
	}

	pending, err := f.paymentService.CountPending(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to count pending payments", err)
	}

	return cards.AdminPanel(stats.TotalUsers, pending), nil
}

func (f *Feature) ViewPayments(ctx context.Context, userID int64) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}

	payments, err := f.paymentService.ListPending(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list pending payments", err)
	}
	return cards.PendingPayments(payments), nil
}

func (f *Feature) EditPackages(ctx context.Context, userID int64) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}

	packages, err := f.paymentService.ListPackages(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list packages", err)
	}
	return cards.PackagePrices(packages), nil
}

func (f *Feature) SetPrice(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}

	if len(args) != 2 {
		return cards.Message("⚙️ Usage: `/setprice <package_key> <new_price>`"), nil
	}

	price, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return cards.Message("❌ Price must be a number."), nil
	}

	pkg, err := f.paymentService.SetPrice(ctx, args[0], price)
	switch {
	case errors.Is(err, service.ErrPackageNotFound):
		return cards.Message("❌ Package not found."), nil
	case errors.Is(err, service.ErrInvalidPrice):
		return cards.Message("❌ Price must not be negative."), nil
	case err != nil:
		return cards.Card{}, common.InternalError("failed to update package price", err)
	}

	return cards.PriceUpdated(pkg), nil
}

func (f *Feature) Broadcast(ctx context.Context, userID int64) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}
	return common.StartFlow(ctx, f.flows, userID, flow.KindBroadcast, nil)
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	return id, err == nil
}

func (f *Feature) AddAdmin(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if !f.adminService.IsSuperAdmin(userID) {
		return cards.Message("🚫 Only the main admin can add new admins."), nil
	}
	if len(args) != 1 {
		return cards.Message("⚙️ Usage: `/addadmin <telegram_id>`"), nil
	}
	target, ok := parseID(args)
	if !ok {
		return cards.Message("❌ Telegram ID must be a number."), nil
	}

	err := f.adminService.AddAdmin(ctx, userID, target)
	switch {
	case errors.Is(err, service.ErrAlreadyAdmin):
		return cards.Message("⚠️ That user is already an admin."), nil
	case errors.Is(err, service.ErrNotSuperAdmin):
		return cards.Message("🚫 Only the main admin can add new admins."), nil
	case err != nil:
		return cards.Card{}, common.InternalError("failed to add admin", err)
	}

	return cards.Message(fmt.Sprintf("✅ Added new admin: %d", target)), nil
}

func (f *Feature) RemoveAdmin(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if !f.adminService.IsSuperAdmin(userID) {
		return cards.Message("🚫 Only the main admin can remove admins."), nil
	}
	if len(args) != 1 {
		return cards.Message("⚙️ Usage: `/removeadmin <telegram_id>`"), nil
	}
	target, ok := parseID(args)
	if !ok {
		return cards.Message("❌ Telegram ID must be a number."), nil
	}

	err := f.adminService.RemoveAdmin(ctx, userID, target)
	switch {
	case errors.Is(err, service.ErrProtectedAdmin):
		return cards.Message("🚫 The main admin cannot be removed."), nil
	case errors.Is(err, service.ErrNotSuperAdmin):
		return cards.Message("🚫 Only the main admin can remove admins."), nil
	case errors.Is(err, service.ErrNotFound):
		return cards.Message("❌ Failed to remove admin."), nil
	case err != nil:
		return cards.Card{}, common.InternalError("failed to remove admin", err)
	}

	return cards.Message(fmt.Sprintf("✅ Removed admin: %d", target)), nil
}

func (f *Feature) Approve(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}
	if len(args) != 1 {
		return cards.Message("⚙️ Usage: `/approve <user_id>`"), nil
	}
	target, ok := parseID(args)
	if !ok {
		return cards.Message("❌ User ID must be a number."), nil
	}

	_, err := f.paymentService.ApprovePayment(ctx, userID, target)
	if errors.Is(err, service.ErrPaymentNotFound) {
		return cards.Message(fmt.Sprintf("❌ No pending payment for user %d.", target)), nil
	}
	if err != nil {
		return cards.Card{}, common.InternalError("failed to approve payment", err)
	}

	return cards.Message(fmt.Sprintf("✅ Approved payment for user ID: %d", target)), nil
}

func (f *Feature) Reject(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}
	if len(args) != 1 {
		return cards.Message("⚙️ Usage: `/reject <user_id>`"), nil
	}
	target, ok := parseID(args)
	if !ok {
		return cards.Message("❌ User ID must be a number."), nil
	}

	_, err := f.paymentService.RejectPayment(ctx, userID, target)
	if errors.Is(err, service.ErrPaymentNotFound) {
		return cards.Message(fmt.Sprintf("❌ No pending payment for user %d.", target)), nil
	}
	if err != nil {
		return cards.Card{}, common.InternalError("failed to reject payment", err)
	}

	return cards.Message(fmt.Sprintf("🚫 Rejected payment for user ID: %d", target)), nil
}

const addForumUsage = "⚙️ Usage: `/addforum <name> | <category> | <description>`"

func (f *Feature) AddForum(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}

	parts := strings.Split(strings.Join(args, " "), "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 3 || parts[0] == "" {
		return cards.Message(addForumUsage), nil
	}
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	forum, err := f.forumService.CreateForum(ctx, parts[0], parts[1], parts[2])
	if errors.Is(err, service.ErrEmptyContent) {
		return cards.Message(addForumUsage), nil
	}
	if err != nil {
		return cards.Card{}, common.InternalError("failed to create forum", err)
	}

	return cards.Message(fmt.Sprintf("✅ Forum *%s* created (`%s`).", cards.Escape(forum.Name), forum.Slug)), nil
}

func (f *Feature) StartTournament(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}
	id, ok := parseID(args)
	if !ok {
		return cards.Message("⚙️ Usage: `/starttournament <tournament_id>`"), nil
	}

	tournament, err := f.tournamentService.StartTournament(ctx, id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return cards.Message("❌ Tournament not found."), nil
	case errors.Is(err, service.ErrInvalidTransition):
		return cards.Message("❌ Only pending tournaments can be started."), nil
	case err != nil:
		return cards.Card{}, common.InternalError("failed to start tournament", err)
	}

	return cards.Message(fmt.Sprintf("✅ Tournament *%s* is now active.", cards.Escape(tournament.Name))), nil
}

func (f *Feature) CompleteTournament(ctx context.Context, userID int64, args []string) (cards.Card, error) {
	if ok, err := f.authorize(ctx, userID); !ok {
		return cards.AdminOnly(), err
	}

	const usage = "⚙️ Usage: `/completetournament <tournament_id> <winner_id>`"
	if len(args) != 2 {
		return cards.Message(usage), nil
	}
	id, idErr := strconv.ParseInt(args[0], 10, 64)
	winner, winnerErr := strconv.ParseInt(args[1], 10, 64)
	if idErr != nil || winnerErr != nil {
		return cards.Message(usage), nil
	}

	tournament, err := f.tournamentService.CompleteTournament(ctx, id, winner)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return cards.Message("❌ Tournament not found."), nil
	case errors.Is(err, service.ErrInvalidTransition):
		return cards.Message("❌ Only active tournaments can be completed."), nil
	case errors.Is(err, service.ErrNotParticipant):
		return cards.Message("❌ The winner must be a participant of the tournament."), nil
	case err != nil:
		return cards.Card{}, common.InternalError("failed to complete tournament", err)
	}

	return cards.Message(fmt.Sprintf("🏆 Tournament *%s* completed. Winner: %d", cards.Escape(tournament.Name), winner)), nil
}
