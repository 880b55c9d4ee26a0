package bot

import (
	"strconv"
	"strings"

	"clubhouse/bot/cards"
)

// RouteKind names a handler destination
type RouteKind int

const (
	RouteUnknown RouteKind = iota

	// navigation
	RouteStart
	RouteMenu
	RouteHelp
	RouteCancel

	// tournaments
	RouteTournaments
	RouteTournamentCreate
	RouteTournamentMy
	RouteTournamentLeaderboard
	RouteTournamentView
	RouteTournamentJoin
	RouteTournamentLeave
	RouteTournamentParticipants

	// forums and threads
	RouteForums
	RouteForumMy
	RouteForumView
	RouteForumFollow
	RouteForumUnfollow
	RouteForumThreads
	RouteThreadCreate
	RouteThreadView
	RouteThreadReplies
	RouteReplyCreate

	// social
	RouteSocial
	RouteSocialFind
	RouteSocialFollowing
	RouteSocialFollowers
	RouteLeaderboard
	RouteSocialView
	RouteSocialFollow
	RouteSocialUnfollow
	RouteSocialThreads

	// profile
	RouteProfile
	RouteProfileBadges

	// papers
	RouteDashboard
	RouteBook
	RouteBookPackage
	RouteMyPapers
	RoutePastPapers
	RouteCheckPayment
	RouteSupport
	RouteMyNotifications

	// admin
	RouteAdminPanel
	RouteViewPayments
	RouteEditPackages
	RouteSetPrice
	RouteBroadcast
	RouteAddAdmin
	RouteRemoveAdmin
	RouteApprove
	RouteReject
	RouteAddForum
	RouteStartTournament
	RouteCompleteTournament
)

// Route is a parsed destination. ID is set for destinations carrying a
// trailing integer, Key for those carrying a string key, Args for commands.
type Route struct {
	Kind RouteKind
	ID   int64
	Key  string
	Args []string
}

var commandRoutes = map[string]RouteKind{
	"start":              RouteStart,
	"menu":               RouteMenu,
	"help":               RouteHelp,
	"cancel":             RouteCancel,
	"dashboard":          RouteDashboard,
	"book":               RouteBook,
	"mypapers":           RouteMyPapers,
	"pastpapers":         RoutePastPapers,
	"checkpayment":       RouteCheckPayment,
	"support":            RouteSupport,
	"mynotifications":    RouteMyNotifications,
	"adminpanel":         RouteAdminPanel,
	"viewpayments":       RouteViewPayments,
	"editpackages":       RouteEditPackages,
	"setprice":           RouteSetPrice,
	"broadcast":          RouteBroadcast,
	"addadmin":           RouteAddAdmin,
	"removeadmin":        RouteRemoveAdmin,
	"approve":            RouteApprove,
	"reject":             RouteReject,
	"addforum":           RouteAddForum,
	"starttournament":    RouteStartTournament,
	"completetournament": RouteCompleteTournament,
}

var callbackRoutes = map[string]RouteKind{
	cards.TokenMenu:   RouteMenu,
	cards.TokenHelp:   RouteHelp,
	cards.TokenCancel: RouteCancel,

	cards.TokenTournaments:           RouteTournaments,
	cards.TokenTournamentCreate:      RouteTournamentCreate,
	cards.TokenTournamentMy:          RouteTournamentMy,
	cards.TokenTournamentLeaderboard: RouteTournamentLeaderboard,

	cards.TokenForums:  RouteForums,
	cards.TokenForumMy: RouteForumMy,

	cards.TokenSocial:            RouteSocial,
	cards.TokenSocialFind:        RouteSocialFind,
	cards.TokenSocialFollowing:   RouteSocialFollowing,
	cards.TokenSocialFollowers:   RouteSocialFollowers,
	cards.TokenSocialLeaderboard: RouteLeaderboard,
	cards.TokenLeaderboard:       RouteLeaderboard,

	cards.TokenProfile:       RouteProfile,
	cards.TokenProfileBadges: RouteProfileBadges,

	cards.TokenDashboard:       RouteDashboard,
	cards.TokenBook:            RouteBook,
	cards.TokenMyPapers:        RouteMyPapers,
	cards.TokenPastPapers:      RoutePastPapers,
	cards.TokenCheckPayment:    RouteCheckPayment,
	cards.TokenSupport:         RouteSupport,
	cards.TokenMyNotifications: RouteMyNotifications,

	cards.TokenAdminPanel:   RouteAdminPanel,
	cards.TokenViewPayments: RouteViewPayments,
	cards.TokenEditPackages: RouteEditPackages,
	cards.TokenBroadcast:    RouteBroadcast,
	cards.TokenAddAdmin:     RouteAddAdmin,
	cards.TokenRemoveAdmin:  RouteRemoveAdmin,
}

type prefixRoute struct {
	prefix string
	kind   RouteKind
	keyed  bool
}

var prefixRoutes = []prefixRoute{
	{prefix: cards.PrefixTournamentView, kind: RouteTournamentView},
	{prefix: cards.PrefixTournamentJoin, kind: RouteTournamentJoin},
	{prefix: cards.PrefixTournamentLeave, kind: RouteTournamentLeave},
	{prefix: cards.PrefixTournamentParticipants, kind: RouteTournamentParticipants},
	{prefix: cards.PrefixForumView, kind: RouteForumView},
	{prefix: cards.PrefixForumFollow, kind: RouteForumFollow},
	{prefix: cards.PrefixForumUnfollow, kind: RouteForumUnfollow},
	{prefix: cards.PrefixForumThreads, kind: RouteForumThreads},
	{prefix: cards.PrefixThreadCreate, kind: RouteThreadCreate},
	{prefix: cards.PrefixThreadView, kind: RouteThreadView},
	{prefix: cards.PrefixThreadReplies, kind: RouteThreadReplies},
	{prefix: cards.PrefixReplyCreate, kind: RouteReplyCreate},
	{prefix: cards.PrefixSocialView, kind: RouteSocialView},
	{prefix: cards.PrefixSocialFollow, kind: RouteSocialFollow},
	{prefix: cards.PrefixSocialUnfollow, kind: RouteSocialUnfollow},
	{prefix: cards.PrefixSocialThreads, kind: RouteSocialThreads},
	{prefix: cards.PrefixBook, kind: RouteBookPackage, keyed: true},
}

// ParseCallback maps a button token to its route. Tokens that match no table,
// or whose id does not parse, are RouteUnknown.
func ParseCallback(token string) Route {
	if kind, ok := callbackRoutes[token]; ok {
		return Route{Kind: kind}
	}

	for _, p := range prefixRoutes {
		if !strings.HasPrefix(token, p.prefix) {
			continue
		}

		rest := token[len(p.prefix):]
		if rest == "" {
			return Route{Kind: RouteUnknown}
		}
		if p.keyed {
			return Route{Kind: p.kind, Key: rest}
		}

		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Route{Kind: RouteUnknown}
		}
		return Route{Kind: p.kind, ID: id}
	}

	return Route{Kind: RouteUnknown}
}

// ParseCommandRoute maps a command name to its route
func ParseCommandRoute(name string, args []string) Route {
	kind, ok := commandRoutes[name]
	if !ok {
		return Route{Kind: RouteUnknown}
	}
	return Route{Kind: kind, Args: args}
}
