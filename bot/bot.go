package bot

import (
	"context"
	"fmt"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/bot/features/admin"
	"clubhouse/bot/features/forums"
	"clubhouse/bot/features/menu"
	"clubhouse/bot/features/papers"
	"clubhouse/bot/features/profile"
	"clubhouse/bot/features/social"
	"clubhouse/bot/features/tournaments"
	"clubhouse/flow"
	"clubhouse/models"
	"clubhouse/service"

	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Messenger delivers cards to a chat platform
type Messenger interface {
	// Send posts a new message into a chat
	Send(ctx context.Context, chatID int64, card cards.Card) error

	// Edit replaces the text and buttons of an existing message
	Edit(ctx context.Context, chatID, messageID int64, card cards.Card) error

	// Notify sends a card to a user's private chat
	Notify(ctx context.Context, userID int64, card cards.Card) error
}

// Config holds bot configuration
type Config struct {
	SupportContact      string
	BroadcastRatePerSec float64
}

// Services groups the services the bot features depend on
type Services struct {
	Users       service.UserService
	Tournaments service.TournamentService
	Forums      service.ForumService
	Social      service.SocialService
	Badges      service.BadgeService
	Payments    service.PaymentService
	Admins      service.AdminService
}

type Bot struct {
	config    Config
	messenger Messenger
	flows     *flow.Controller
	limiter   *rate.Limiter
	locks     *userLocks

	userService  service.UserService
	adminService service.AdminService

	menu        *menu.Feature
	tournaments *tournaments.Feature
	forums      *forums.Feature
	social      *social.Feature
	profile     *profile.Feature
	papers      *papers.Feature
	admin       *admin.Feature
}

// New wires the features together and registers the broadcast flow on flows
func New(config Config, services Services, flows *flow.Controller, messenger Messenger) *Bot {
	if config.BroadcastRatePerSec <= 0 {
		config.BroadcastRatePerSec = 25
	}

	b := &Bot{
		config:       config,
		messenger:    messenger,
		flows:        flows,
		limiter:      rate.NewLimiter(rate.Limit(config.BroadcastRatePerSec), 1),
		locks:        newUserLocks(),
		userService:  services.Users,
		adminService: services.Admins,

		menu:        menu.New(services.Users),
		tournaments: tournaments.New(services.Tournaments, services.Users, flows),
		forums:      forums.New(services.Forums, services.Users, flows),
		social:      social.New(services.Users, services.Social, services.Forums, services.Badges),
		profile:     profile.New(services.Users, services.Badges),
		papers:      papers.New(services.Users, services.Payments, flows, config.SupportContact),
		admin:       admin.New(services.Admins, services.Users, services.Payments, services.Forums, services.Tournaments, flows),
	}

	flows.Register(flow.BroadcastFlow(b.Broadcast))
	return b
}

// Handle processes one inbound update and sends exactly one reply. Free text
// in a shared channel is skipped unless the user is in a flow. Updates from
// the same user are processed one at a time.
func (b *Bot) Handle(ctx context.Context, u *Update) (err error) {
	if u.ID == "" {
		u.ID = ulid.Make().String()
	}

	fields := log.Fields{
		"update_id": u.ID,
		"user_id":   u.UserID,
		"kind":      u.Kind,
	}

	unlock := b.locks.lock(u.UserID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(fields).WithField("panic", r).Error("Update handler panicked")
			err = b.reply(ctx, u, cards.GenericError())
		}
	}()

	if u.Kind == UpdateText && u.Shared && !b.inFlow(ctx, u.UserID, fields) {
		log.WithFields(fields).Debug("Ignoring channel chat outside a flow")
		return nil
	}

	log.WithFields(fields).Debug("Handling update")

	card := b.process(ctx, u, fields)
	return b.reply(ctx, u, card)
}

// inFlow reports whether the user has an active wizard. Lookup failures count
// as idle.
func (b *Bot) inFlow(ctx context.Context, userID int64, fields log.Fields) bool {
	active, err := b.flows.Active(ctx, userID)
	if err != nil {
		log.WithFields(fields).WithError(err).Warn("Failed to load flow state")
		return false
	}
	return active != nil
}

func (b *Bot) process(ctx context.Context, u *Update, fields log.Fields) cards.Card {
	user, err := b.userService.GetOrCreateUser(ctx, u.UserID, u.Username, u.FullName)
	if err != nil {
		return cards.Error(common.HandleError(common.InternalError("failed to load user", err), fields))
	}

	var card cards.Card
	switch u.Kind {
	case UpdateText:
		card, err = b.advanceFlow(ctx, u)
	case UpdateCommand:
		card, err = b.dispatch(ctx, u, ParseCommandRoute(u.Command, u.Args), user)
	case UpdateCallback:
		card, err = b.dispatch(ctx, u, ParseCallback(u.Token), user)
	default:
		card = cards.UnknownCommand()
	}

	if err != nil {
		return cards.Error(common.HandleError(err, fields))
	}
	return card
}

func (b *Bot) reply(ctx context.Context, u *Update, card cards.Card) error {
	if u.Kind == UpdateCallback && u.MessageID != 0 {
		err := b.messenger.Edit(ctx, u.ChatID, u.MessageID, card)
		if err == nil {
			return nil
		}
		log.WithFields(log.Fields{
			"update_id":  u.ID,
			"chat_id":    u.ChatID,
			"message_id": u.MessageID,
			"error":      err,
		}).Warn("Failed to edit message, sending a new one")
	}

	if err := b.messenger.Send(ctx, u.ChatID, card); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func (b *Bot) dispatch(ctx context.Context, u *Update, route Route, user *models.User) (cards.Card, error) {
	userID := u.UserID
	name := user.DisplayName()

	switch route.Kind {
	case RouteStart:
		return b.menu.Start(u.FirstName), nil
	case RouteMenu:
		return b.menu.Menu(ctx, user)
	case RouteHelp:
		return b.menu.Help(), nil
	case RouteCancel:
		if _, err := b.flows.Cancel(ctx, userID); err != nil {
			return cards.Card{}, common.InternalError("failed to cancel flow", err)
		}
		return cards.Cancelled(), nil

	case RouteTournaments:
		return b.tournaments.Menu(ctx)
	case RouteTournamentCreate:
		return b.tournaments.Create(ctx, userID)
	case RouteTournamentMy:
		return b.tournaments.Mine(ctx, userID)
	case RouteTournamentLeaderboard:
		return b.tournaments.Leaderboard(ctx)
	case RouteTournamentView:
		return b.tournaments.View(ctx, userID, route.ID)
	case RouteTournamentJoin:
		return b.tournaments.Join(ctx, userID, route.ID)
	case RouteTournamentLeave:
		return b.tournaments.Leave(ctx, userID, route.ID)
	case RouteTournamentParticipants:
		return b.tournaments.Participants(ctx, route.ID)

	case RouteForums:
		return b.forums.Menu(ctx, userID)
	case RouteForumMy:
		return b.forums.Mine(ctx, userID)
	case RouteForumView:
		return b.forums.View(ctx, userID, route.ID)
	case RouteForumFollow:
		return b.forums.Follow(ctx, userID, route.ID)
	case RouteForumUnfollow:
		return b.forums.Unfollow(ctx, userID, route.ID)
	case RouteForumThreads:
		return b.forums.Threads(ctx, route.ID)
	case RouteThreadCreate:
		return b.forums.CreateThread(ctx, userID, route.ID)
	case RouteThreadView:
		return b.forums.ViewThread(ctx, route.ID)
	case RouteThreadReplies:
		return b.forums.Replies(ctx, route.ID)
	case RouteReplyCreate:
		return b.forums.CreateReply(ctx, userID, route.ID)

	case RouteSocial:
		return b.social.Menu(ctx)
	case RouteSocialFind:
		return b.social.Find(ctx, userID)
	case RouteSocialFollowing:
		return b.social.Following(ctx, userID)
	case RouteSocialFollowers:
		return b.social.Followers(ctx, userID)
	case RouteLeaderboard:
		return b.social.Leaderboard(ctx)
	case RouteSocialView:
		return b.social.View(ctx, userID, route.ID)
	case RouteSocialFollow:
		return b.social.Follow(ctx, userID, route.ID)
	case RouteSocialUnfollow:
		return b.social.Unfollow(ctx, userID, route.ID)
	case RouteSocialThreads:
		return b.social.Threads(ctx, route.ID)

	case RouteProfile:
		return b.profile.Profile(ctx, userID)
	case RouteProfileBadges:
		return b.profile.Badges(ctx, userID)

	case RouteDashboard:
		return b.papers.Dashboard(ctx, userID)
	case RouteBook:
		return b.papers.Book(ctx)
	case RouteBookPackage:
		return b.papers.BookPackage(ctx, userID, name, route.Key)
	case RouteMyPapers:
		return b.papers.MyPapers(ctx, userID)
	case RoutePastPapers:
		return b.papers.PastPapers(), nil
	case RouteCheckPayment:
		return b.papers.CheckPayment(ctx, userID, name)
	case RouteSupport:
		return b.papers.Support(), nil
	case RouteMyNotifications:
		return b.papers.Notifications(), nil

	case RouteAdminPanel:
		return b.admin.Panel(ctx, userID)
	case RouteViewPayments:
		return b.admin.ViewPayments(ctx, userID)
	case RouteEditPackages:
		return b.admin.EditPackages(ctx, userID)
	case RouteSetPrice:
		return b.admin.SetPrice(ctx, userID, route.Args)
	case RouteBroadcast:
		return b.admin.Broadcast(ctx, userID)
	case RouteAddAdmin:
		return b.admin.AddAdmin(ctx, userID, route.Args)
	case RouteRemoveAdmin:
		return b.admin.RemoveAdmin(ctx, userID, route.Args)
	case RouteApprove:
		return b.admin.Approve(ctx, userID, route.Args)
	case RouteReject:
		return b.admin.Reject(ctx, userID, route.Args)
	case RouteAddForum:
		return b.admin.AddForum(ctx, userID, route.Args)
	case RouteStartTournament:
		return b.admin.StartTournament(ctx, userID, route.Args)
	case RouteCompleteTournament:
		return b.admin.CompleteTournament(ctx, userID, route.Args)
	}

	log.WithFields(log.Fields{
		"update_id": u.ID,
		"command":   u.Command,
		"token":     u.Token,
	}).Info("Unknown command")
	return cards.UnknownCommand(), nil
}

// Broadcast delivers message to every known user at the configured rate.
// Failed recipients are skipped and counted. The fan-out outlives the
// inbound request that started it.
func (b *Bot) Broadcast(ctx context.Context, senderID int64, message string) (*flow.BroadcastResult, error) {
	ctx = context.WithoutCancel(ctx)

	ids, err := b.userService.GetAllUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	card := cards.Message(cards.Escape(message))
	result := &flow.BroadcastResult{Total: len(ids)}

	for _, id := range ids {
		if err := b.limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("broadcast interrupted after %d deliveries: %w", result.Delivered, err)
		}

		if err := b.messenger.Notify(ctx, id, card); err != nil {
			log.WithFields(log.Fields{
				"recipient": id,
				"error":     err,
			}).Warn("Failed to deliver broadcast")
			continue
		}
		result.Delivered++
	}

	log.WithFields(log.Fields{
		"sender_id": senderID,
		"delivered": result.Delivered,
		"total":     result.Total,
	}).Info("Broadcast finished")

	return result, nil
}
