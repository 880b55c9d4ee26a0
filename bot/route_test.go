package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		token string
		want  Route
	}{
		{"menu", Route{Kind: RouteMenu}},
		{"cancel", Route{Kind: RouteCancel}},
		{"tournaments", Route{Kind: RouteTournaments}},
		{"tournament_create", Route{Kind: RouteTournamentCreate}},
		{"tournament_view_12", Route{Kind: RouteTournamentView, ID: 12}},
		{"tournament_join_3", Route{Kind: RouteTournamentJoin, ID: 3}},
		{"tournament_participants_9", Route{Kind: RouteTournamentParticipants, ID: 9}},
		{"forum_unfollow_2", Route{Kind: RouteForumUnfollow, ID: 2}},
		{"thread_replies_40", Route{Kind: RouteThreadReplies, ID: 40}},
		{"reply_create_40", Route{Kind: RouteReplyCreate, ID: 40}},
		{"social_view_6501240419", Route{Kind: RouteSocialView, ID: 6501240419}},
		{"leaderboard", Route{Kind: RouteLeaderboard}},
		{"social_leaderboard", Route{Kind: RouteLeaderboard}},
		{"/dashboard", Route{Kind: RouteDashboard}},
		{"/book", Route{Kind: RouteBook}},
		{"/book_package_5", Route{Kind: RouteBookPackage, Key: "package_5"}},
		{"/book_early_bird", Route{Kind: RouteBookPackage, Key: "early_bird"}},
		{"/viewpayments", Route{Kind: RouteViewPayments}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCallback(tt.token))
		})
	}
}

func TestParseCallback_Unknown(t *testing.T) {
	for _, token := range []string{
		"",
		"quick_play",
		"settings",
		"tournament_view_",
		"tournament_view_abc",
		"tournament_fixtures_3",
		"forum_view_1x",
		"/book_",
	} {
		t.Run(token, func(t *testing.T) {
			assert.Equal(t, RouteUnknown, ParseCallback(token).Kind)
		})
	}
}

func TestParseCommandRoute(t *testing.T) {
	assert.Equal(t, Route{Kind: RouteStart, Args: nil}, ParseCommandRoute("start", nil))
	assert.Equal(t, Route{Kind: RouteSetPrice, Args: []string{"single", "2500"}}, ParseCommandRoute("setprice", []string{"single", "2500"}))
	assert.Equal(t, RouteUnknown, ParseCommandRoute("nope", nil).Kind)
}

func TestNewMessageUpdate(t *testing.T) {
	t.Run("command with bot suffix", func(t *testing.T) {
		u := NewMessageUpdate(1, 2, "/setprice@ClubhouseBot single 2500")
		assert.Equal(t, UpdateCommand, u.Kind)
		assert.Equal(t, "setprice", u.Command)
		assert.Equal(t, []string{"single", "2500"}, u.Args)
	})

	t.Run("free text", func(t *testing.T) {
		u := NewMessageUpdate(1, 2, "FIFA 14 Champions League")
		assert.Equal(t, UpdateText, u.Kind)
		assert.Equal(t, "FIFA 14 Champions League", u.Text)
	})

	t.Run("lone slash is text", func(t *testing.T) {
		assert.Equal(t, UpdateText, NewMessageUpdate(1, 2, "/").Kind)
	})
}
