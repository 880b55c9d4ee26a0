package cards

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"clubhouse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"exactly thirty-five characters long",
		"this tournament name is definitely longer than the budget",
		"⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽⚽",
	}

	for _, input := range inputs {
		for _, budget := range []int{3, 5, 10, TruncateLength} {
			t.Run(fmt.Sprintf("%d/%q", budget, input), func(t *testing.T) {
				got := Truncate(input, budget)
				assert.LessOrEqual(t, utf8.RuneCountInString(got), budget)

				long := utf8.RuneCountInString(input) > budget
				assert.Equal(t, long, strings.HasSuffix(got, "..."))
				if !long {
					assert.Equal(t, input, got)
				}
			})
		}
	}
}

func TestTruncate_SmallBudgetIsRaised(t *testing.T) {
	for _, budget := range []int{-1, 0, 1, 2} {
		t.Run(fmt.Sprint(budget), func(t *testing.T) {
			assert.Equal(t, "...", Truncate("Champions", budget))
			assert.Equal(t, "abc", Truncate("abc", budget))
			assert.Equal(t, "ab", Truncate("ab", budget))
		})
	}
}

func TestTruncate_KeepsPrefix(t *testing.T) {
	assert.Equal(t, "FIFA 14 Cha...", Truncate("FIFA 14 Champions League", 14))
}

func TestProgressBar(t *testing.T) {
	for _, length := range []int{1, 5, ProgressBarLength, 13} {
		for p := 0; p <= 100; p++ {
			bar := ProgressBar(float64(p), length)
			filled := p * length / 100

			assert.Equal(t, filled, strings.Count(bar, "🟩"), "p=%d L=%d", p, length)
			assert.Equal(t, length-filled, strings.Count(bar, "⬜"), "p=%d L=%d", p, length)
		}
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	assert.Equal(t, strings.Repeat("⬜", 10), ProgressBar(-20, 10))
	assert.Equal(t, strings.Repeat("🟩", 10), ProgressBar(250, 10))
	assert.Equal(t, "🟩🟩🟩🟩⬜⬜⬜⬜⬜⬜", ProgressBar(45, 10))
}

func buttons(n int, prefix string) []Button {
	out := make([]Button, n)
	for i := range out {
		out[i] = Button{Label: fmt.Sprintf("%s%d", prefix, i), Token: fmt.Sprintf("%s%d", prefix, i)}
	}
	return out
}

func TestGrid_WrapsWideRows(t *testing.T) {
	rows := Grid([][]Button{buttons(5, "c")}, [][]Button{buttons(1, "a")})

	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.LessOrEqual(t, len(row), MaxButtonsPerRow)
	}
	assert.Equal(t, "a0", rows[3][0].Token)
}

func TestGrid_DropsContentBeforeActions(t *testing.T) {
	var content [][]Button
	for _, b := range buttons(10, "c") {
		content = append(content, []Button{b})
	}
	actions := column(buttons(3, "a")...)

	rows := Grid(content, actions)

	require.Len(t, rows, MaxRowsPerCard)
	assert.Equal(t, "c0", rows[0][0].Token)
	assert.Equal(t, "c4", rows[4][0].Token)
	assert.Equal(t, "a0", rows[5][0].Token)
	assert.Equal(t, "a2", rows[7][0].Token)
}

func TestFixedCards(t *testing.T) {
	errCard := Error("Tournament not found")
	assert.Equal(t, "❌ *Oops!*\n\nTournament not found", errCard.Text)
	assert.Equal(t, [][]Button{{{Label: "🏠 Main Menu", Token: TokenMenu}}}, errCard.Rows)

	success := Success("Tournament Joined!", "You've successfully joined the tournament!", "tournament_view_3")
	assert.Equal(t, "✅ *Tournament Joined!*\n\nYou've successfully joined the tournament!", success.Text)
	assert.Equal(t, "tournament_view_3", success.Rows[0][0].Token)
	assert.Equal(t, TokenMenu, success.Rows[1][0].Token)

	assert.Equal(t, "❌ Operation cancelled.", Cancelled().Text)
	assert.Equal(t, "🚫 Admin access only.", AdminOnly().Text)
	assert.Equal(t, TokenCancel, FlowPrompt("Step 1/4").Rows[0][0].Token)
}

func TestTournamentCard(t *testing.T) {
	tournament := &models.Tournament{
		ID:           3,
		Name:         "Weekend Cup",
		GameVersion:  "FIFA 14",
		MaxTeams:     16,
		CurrentTeams: 2,
		PrizePool:    "Glory",
		Status:       models.TournamentStatusPending,
		CreatorName:  "host",
	}
	participants := []*models.Participant{{UserID: 1, Username: "alpha"}, {UserID: 2, Username: "bravo"}}

	t.Run("not joined", func(t *testing.T) {
		card := TournamentCard(tournament, participants, false)

		assert.Contains(t, card.Text, "🟡 *Weekend Cup*")
		assert.Contains(t, card.Text, "👥 *Teams:* 2/16")
		assert.Contains(t, card.Text, "📝 *Status:* Pending")
		assert.Contains(t, card.Text, "1. alpha\n2. bravo")
		assert.Equal(t, "tournament_join_3", card.Rows[0][0].Token)
	})

	t.Run("joined", func(t *testing.T) {
		card := TournamentCard(tournament, participants, true)
		assert.Equal(t, "tournament_leave_3", card.Rows[0][0].Token)
	})

	t.Run("active has no join button", func(t *testing.T) {
		active := *tournament
		active.Status = models.TournamentStatusActive
		card := TournamentCard(&active, participants, false)

		assert.Equal(t, "tournament_participants_3", card.Rows[0][0].Token)
		assert.Contains(t, card.Text, "📝 *Status:* Active")
	})
}

func TestForumCard_TitleCasesCategory(t *testing.T) {
	forum := &models.Forum{ID: 2, Name: "Training Ground", Icon: "🏋️", Category: "guides"}

	card := ForumCard(forum, nil, true)

	assert.Contains(t, card.Text, "📖 *Category:* Guides")
	assert.Contains(t, card.Text, "❤️ *Status:* Following")
	assert.Equal(t, "forum_unfollow_2", card.Rows[0][0].Token)
}

func TestOwnProfile_Progress(t *testing.T) {
	user := &models.User{TelegramID: 5, Username: "striker", Level: 2, Experience: 145}

	card := OwnProfile(user, nil)

	assert.Contains(t, card.Text, "🟩🟩🟩🟩⬜⬜⬜⬜⬜⬜ 45%")
	assert.Contains(t, card.Text, "🎯 *No badges yet!*")
}

func TestPackages(t *testing.T) {
	card := Packages([]*models.Package{
		{Key: "single", Name: "Single Paper", Price: 2000},
		{Key: "package_5", Name: "5 Papers Package", Price: 8000},
	})

	require.Len(t, card.Rows, 3)
	assert.Equal(t, Button{Label: "📘 Single Paper - KES 2,000", Token: "/book_single"}, card.Rows[0][0])
	assert.Equal(t, Button{Label: "📚 5 Papers - KES 8,000", Token: "/book_package_5"}, card.Rows[1][0])
	assert.Equal(t, TokenDashboard, card.Rows[2][0].Token)
}

func TestDashboard(t *testing.T) {
	pending := "school"
	card := Dashboard(&models.User{TelegramID: 1, FullName: "Jane Doe", PendingPackage: &pending})

	assert.Contains(t, card.Text, "👤 Name: Jane Doe")
	assert.Contains(t, card.Text, "📦 Package: None")
	assert.Contains(t, card.Text, "📚 Booked: school")
	assert.Contains(t, card.Text, "💳 Status: ❌ Not Paid")
	assert.Len(t, card.Rows, 6)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "john\\_doe \\*star\\*", Escape("john_doe *star*"))
}
