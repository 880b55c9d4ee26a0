package cards

import (
	"fmt"
	"strings"

	"clubhouse/models"
)

// Callback tokens for community destinations
const (
	TokenTournaments           = "tournaments"
	TokenTournamentCreate      = "tournament_create"
	TokenTournamentMy          = "tournament_my"
	TokenTournamentLeaderboard = "tournament_leaderboard"
	TokenForums                = "forums"
	TokenForumMy               = "forum_my"
	TokenSocial                = "social"
	TokenSocialFind            = "social_find"
	TokenSocialFollowing       = "social_following"
	TokenSocialFollowers       = "social_followers"
	TokenSocialLeaderboard     = "social_leaderboard"
	TokenLeaderboard           = "leaderboard"
	TokenProfile               = "profile"
	TokenProfileBadges         = "profile_badges"

	PrefixTournamentView         = "tournament_view_"
	PrefixTournamentJoin         = "tournament_join_"
	PrefixTournamentLeave        = "tournament_leave_"
	PrefixTournamentParticipants = "tournament_participants_"
	PrefixForumView              = "forum_view_"
	PrefixForumFollow            = "forum_follow_"
	PrefixForumUnfollow          = "forum_unfollow_"
	PrefixForumThreads           = "forum_threads_"
	PrefixThreadCreate           = "thread_create_"
	PrefixThreadView             = "thread_view_"
	PrefixThreadReplies          = "thread_replies_"
	PrefixReplyCreate            = "reply_create_"
	PrefixSocialView             = "social_view_"
	PrefixSocialFollow           = "social_follow_"
	PrefixSocialUnfollow         = "social_unfollow_"
	PrefixSocialThreads          = "social_threads_"
)

var (
	tournamentsButton = Button{Label: "⚽ Tournaments", Token: TokenTournaments}
	forumsButton      = Button{Label: "💬 Forums", Token: TokenForums}
	socialButton      = Button{Label: "👥 Social", Token: TokenSocial}
)

var tournamentStatusEmoji = map[models.TournamentStatus]string{
	models.TournamentStatusPending:   "🟡",
	models.TournamentStatusActive:    "🟢",
	models.TournamentStatusCompleted: "✅",
	models.TournamentStatusCancelled: "❌",
}

func statusEmoji(status models.TournamentStatus) string {
	if emoji, ok := tournamentStatusEmoji[status]; ok {
		return emoji
	}
	return "⚽"
}

func displayName(u *models.User) string {
	return Escape(u.DisplayName())
}

func MainMenu(user *models.User, stats *models.QuickStats) Card {
	text := fmt.Sprintf("🎮 *Welcome to SoccerForum, %s!* 🏆\n\n", displayName(user)) +
		"📊 *Community Stats:*\n" +
		fmt.Sprintf("👥 %d members • 📝 %d threads\n", stats.TotalUsers, stats.TotalThreads) +
		fmt.Sprintf("⚽ %d active tournaments\n\n", stats.ActiveTournaments) +
		"✨ *Choose your action below:*"

	return Card{
		Text: text,
		Rows: Grid(nil, [][]Button{
			{tournamentsButton, forumsButton},
			{socialButton, {Label: "👤 Profile", Token: TokenProfile}},
			{{Label: "📊 Leaderboard", Token: TokenLeaderboard}, {Label: "📘 Papers", Token: TokenDashboard}},
			{{Label: "🆘 Help", Token: TokenHelp}},
		}),
	}
}

// ==================== TOURNAMENTS ====================

func tournamentButtons(tournaments []*models.Tournament) [][]Button {
	rows := make([][]Button, 0, len(tournaments))
	for _, t := range tournaments {
		rows = append(rows, []Button{{
			Label: fmt.Sprintf("%s %s", statusEmoji(t.Status), Truncate(t.Name, TruncateLength)),
			Token: withID(PrefixTournamentView, t.ID),
		}})
	}
	return rows
}

func TournamentsMenu(pending []*models.Tournament, stats *models.QuickStats) Card {
	text := "⚽ *Tournament Hub* 🏆\n\n" +
		fmt.Sprintf("🎯 *Active: %d* • ⏳ *Pending: %d*\n\n", stats.ActiveTournaments, len(pending)) +
		"Join competitive tournaments and showcase your skills!\n"

	return Card{
		Text: text,
		Rows: Grid(tournamentButtons(pending), column(
			Button{Label: "➕ Create Tournament", Token: TokenTournamentCreate},
			Button{Label: "📋 My Tournaments", Token: TokenTournamentMy},
			Button{Label: "🏆 Leaderboard", Token: TokenTournamentLeaderboard},
			Button{Label: "🔙 Main Menu", Token: TokenMenu},
		)),
	}
}

// participantPreview is how many names the tournament card lists
const participantPreview = 5

func TournamentCard(t *models.Tournament, participants []*models.Participant, joined bool) Card {
	creator := t.CreatorName
	if creator == "" {
		creator = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", statusEmoji(t.Status), Escape(t.Name))
	fmt.Fprintf(&b, "🎮 *Game:* %s\n", Escape(t.GameVersion))
	fmt.Fprintf(&b, "👥 *Teams:* %d/%d\n", t.CurrentTeams, t.MaxTeams)
	fmt.Fprintf(&b, "🏅 *Prize:* %s\n", Escape(t.PrizePool))
	fmt.Fprintf(&b, "📝 *Status:* %s\n", Title(string(t.Status)))
	fmt.Fprintf(&b, "👤 *Creator:* %s\n\n", Escape(creator))
	fmt.Fprintf(&b, "*Description:*\n%s\n\n", Escape(t.Description))

	if len(participants) > 0 {
		b.WriteString("👥 *Participants:*\n")
		for i, p := range participants {
			if i == participantPreview {
				fmt.Fprintf(&b, "... and %d more\n", len(participants)-participantPreview)
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, Escape(p.Username))
		}
	}

	var actions []Button
	if t.Status == models.TournamentStatusPending {
		if joined {
			actions = append(actions, Button{Label: "❌ Leave Tournament", Token: withID(PrefixTournamentLeave, t.ID)})
		} else {
			actions = append(actions, Button{Label: "✅ Join Tournament", Token: withID(PrefixTournamentJoin, t.ID)})
		}
	}
	actions = append(actions,
		Button{Label: "👥 Participants", Token: withID(PrefixTournamentParticipants, t.ID)},
		tournamentsButton,
		Button{Label: "🔙 Main Menu", Token: TokenMenu},
	)

	return Card{Text: b.String(), Rows: Grid(nil, column(actions...))}
}

func MyTournaments(tournaments []*models.Tournament) Card {
	text := "📋 *My Tournaments*\n\n"
	if len(tournaments) == 0 {
		text += "You haven't joined any tournaments yet."
	} else {
		text += fmt.Sprintf("You're registered in %d tournament(s).", len(tournaments))
	}

	return Card{
		Text: text,
		Rows: Grid(tournamentButtons(tournaments), column(tournamentsButton, mainMenuButton)),
	}
}

func Participants(t *models.Tournament, participants []*models.Participant) Card {
	var b strings.Builder
	fmt.Fprintf(&b, "👥 *Participants - %s*\n\n", Escape(t.Name))
	fmt.Fprintf(&b, "%d/%d teams registered\n\n", len(participants), t.MaxTeams)
	if len(participants) == 0 {
		b.WriteString("No participants yet. Be the first to join!")
	}
	for i, p := range participants {
		fmt.Fprintf(&b, "%d. %s\n", i+1, Escape(p.Username))
	}

	return Card{
		Text: b.String(),
		Rows: Grid(nil, column(
			Button{Label: "🔙 Tournament", Token: withID(PrefixTournamentView, t.ID)},
			mainMenuButton,
		)),
	}
}

func TournamentLeaderboard(users []*models.User) Card {
	var b strings.Builder
	b.WriteString("🏆 *Tournament Leaderboard*\n\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%s *%s* - ⚽ %d tournaments\n", medal(i+1), displayName(u), u.TournamentsJoined)
	}

	return Card{
		Text: b.String(),
		Rows: Grid(nil, column(tournamentsButton, mainMenuButton)),
	}
}

func TournamentCreated(t *models.Tournament) Card {
	return Card{
		Text: "✅ Tournament created successfully!\n\n" +
			fmt.Sprintf("🏆 *%s*\n", Escape(t.Name)) +
			fmt.Sprintf("🎮 %s\n", Escape(t.GameVersion)) +
			fmt.Sprintf("👥 %d teams max\n\n", t.MaxTeams) +
			"Share the tournament with others to join!",
		Rows: column(
			Button{Label: "👀 View Tournament", Token: withID(PrefixTournamentView, t.ID)},
			tournamentsButton,
			mainMenuButton,
		),
	}
}

// ==================== FORUMS ====================

func forumButton(f *models.Forum, followed bool) Button {
	heart := "💙"
	if followed {
		heart = "❤️"
	}
	return Button{
		Label: fmt.Sprintf("%s %s (%d) %s", f.Icon, Truncate(f.Name, TruncateLength), f.ThreadCount, heart),
		Token: withID(PrefixForumView, f.ID),
	}
}

func ForumsMenu(forums []*models.Forum, followed map[int64]bool, stats *models.QuickStats) Card {
	text := "💬 *Forum Hub* 📚\n\n" +
		fmt.Sprintf("📊 %d threads • 💭 %d replies\n\n", stats.TotalThreads, stats.TotalReplies) +
		"Join discussions about your favorite football games!\n"

	content := make([][]Button, 0, len(forums))
	for _, f := range forums {
		content = append(content, []Button{forumButton(f, followed[f.ID])})
	}

	return Card{
		Text: text,
		Rows: Grid(content, column(
			Button{Label: "📚 My Forums", Token: TokenForumMy},
			Button{Label: "🔙 Main Menu", Token: TokenMenu},
		)),
	}
}

func MyForums(forums []*models.Forum) Card {
	text := "📚 *My Forums*\n\n"
	if len(forums) == 0 {
		text += "You're not following any forums yet. Follow a forum to see it here."
	}

	content := make([][]Button, 0, len(forums))
	for _, f := range forums {
		content = append(content, []Button{forumButton(f, true)})
	}

	return Card{
		Text: text,
		Rows: Grid(content, column(forumsButton, mainMenuButton)),
	}
}

// recentThreadPreview is how many threads the forum card lists
const recentThreadPreview = 3

func ForumCard(f *models.Forum, threads []*models.Thread, following bool) Card {
	status := "Not following"
	if following {
		status = "Following"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", f.Icon, Escape(f.Name))
	fmt.Fprintf(&b, "📖 *Category:* %s\n", Title(f.Category))
	fmt.Fprintf(&b, "📝 *Threads:* %d\n", f.ThreadCount)
	fmt.Fprintf(&b, "💬 *Replies:* %d\n", f.ReplyCount)
	fmt.Fprintf(&b, "❤️ *Status:* %s\n\n", status)
	fmt.Fprintf(&b, "*Description:*\n%s\n\n", Escape(f.Description))

	if len(threads) > 0 {
		b.WriteString("📝 *Recent Threads:*\n")
		for i, t := range threads {
			if i == recentThreadPreview {
				break
			}
			fmt.Fprintf(&b, "• %s by %s (%d💬)\n", Escape(Truncate(t.Title, TruncateLength)), Escape(t.CreatorName), t.ReplyCount)
		}
		b.WriteString("\n")
	}

	follow := Button{Label: "❤️ Follow", Token: withID(PrefixForumFollow, f.ID)}
	if following {
		follow = Button{Label: "💔 Unfollow", Token: withID(PrefixForumUnfollow, f.ID)}
	}

	return Card{
		Text: b.String(),
		Rows: Grid(nil, column(
			follow,
			Button{Label: "📝 New Thread", Token: withID(PrefixThreadCreate, f.ID)},
			Button{Label: "📚 Browse Threads", Token: withID(PrefixForumThreads, f.ID)},
			forumsButton,
			Button{Label: "🔙 Main Menu", Token: TokenMenu},
		)),
	}
}

func threadButtons(threads []*models.Thread) [][]Button {
	rows := make([][]Button, 0, len(threads))
	for _, t := range threads {
		label := "📄 " + Truncate(t.Title, TruncateLength)
		if t.IsPinned {
			label = "📌 " + Truncate(t.Title, TruncateLength)
		}
		rows = append(rows, []Button{{Label: label, Token: withID(PrefixThreadView, t.ID)}})
	}
	return rows
}

func ThreadList(f *models.Forum, threads []*models.Thread) Card {
	text := fmt.Sprintf("📚 *%s - Threads*\n\n", Escape(f.Name))
	if len(threads) == 0 {
		text += "No threads yet. Start the first discussion!"
	}

	return Card{
		Text: text,
		Rows: Grid(threadButtons(threads), column(
			Button{Label: "📝 New Thread", Token: withID(PrefixThreadCreate, f.ID)},
			Button{Label: "🔙 Forum", Token: withID(PrefixForumView, f.ID)},
			mainMenuButton,
		)),
	}
}

// Reply previews on the thread card
const (
	replyPreview       = 3
	replyPreviewLength = 100
)

const timestampLayout = "2006-01-02 15:04"

func ThreadCard(t *models.Thread, replies []*models.Reply) Card {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 *%s*\n\n", Escape(t.Title))
	fmt.Fprintf(&b, "*Forum:* %s\n", Escape(t.ForumName))
	fmt.Fprintf(&b, "*Author:* %s\n", Escape(t.CreatorName))
	fmt.Fprintf(&b, "*Replies:* %d\n", t.ReplyCount)
	fmt.Fprintf(&b, "*Views:* %d\n", t.Views)
	fmt.Fprintf(&b, "*Created:* %s\n\n", t.CreatedAt.Format(timestampLayout))
	fmt.Fprintf(&b, "*Content:*\n%s\n\n", Escape(t.Content))

	if len(replies) > 0 {
		b.WriteString("--- *Recent Replies* ---\n")
		for i, r := range replies {
			if i == replyPreview {
				break
			}
			fmt.Fprintf(&b, "\n👤 *%s:*\n%s", Escape(r.Username), Escape(Truncate(r.Content, replyPreviewLength)))
			fmt.Fprintf(&b, "\n🕒 %s\n", r.CreatedAt.Format(timestampLayout))
		}
	}
	if t.ReplyCount > replyPreview {
		fmt.Fprintf(&b, "\n... and %d more replies", t.ReplyCount-replyPreview)
	}

	var actions []Button
	if !t.IsLocked {
		actions = append(actions, Button{Label: "💬 Reply", Token: withID(PrefixReplyCreate, t.ID)})
	}
	actions = append(actions,
		Button{Label: "📋 All Replies", Token: withID(PrefixThreadReplies, t.ID)},
		Button{Label: "🔙 Forum", Token: withID(PrefixForumView, t.ForumID)},
		forumsButton,
		mainMenuButton,
	)

	return Card{Text: b.String(), Rows: Grid(nil, column(actions...))}
}

func RepliesList(t *models.Thread, replies []*models.Reply) Card {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *Replies - %s*\n\n", Escape(Truncate(t.Title, TruncateLength)))
	if len(replies) == 0 {
		b.WriteString("No replies yet. Be the first to reply!")
	}
	for _, r := range replies {
		fmt.Fprintf(&b, "👤 *%s* 🕒 %s\n%s\n\n", Escape(r.Username), r.CreatedAt.Format(timestampLayout), Escape(r.Content))
	}

	var actions []Button
	if !t.IsLocked {
		actions = append(actions, Button{Label: "💬 Reply", Token: withID(PrefixReplyCreate, t.ID)})
	}
	actions = append(actions,
		Button{Label: "🔙 Thread", Token: withID(PrefixThreadView, t.ID)},
		mainMenuButton,
	)

	return Card{Text: b.String(), Rows: Grid(nil, column(actions...))}
}

func ThreadCreated(forumName string, t *models.Thread) Card {
	return Card{
		Text: fmt.Sprintf("✅ Thread created in *%s*!\n\n*%s*", Escape(forumName), Escape(t.Title)),
		Rows: column(
			Button{Label: "👀 View Thread", Token: withID(PrefixThreadView, t.ID)},
			Button{Label: "💬 Forum", Token: withID(PrefixForumView, t.ForumID)},
			forumsButton,
		),
	}
}

func ReplyPosted(threadID, forumID int64) Card {
	return Card{
		Text: "✅ Reply posted successfully!",
		Rows: column(
			Button{Label: "👀 View Thread", Token: withID(PrefixThreadView, threadID)},
			Button{Label: "💬 Forum", Token: withID(PrefixForumView, forumID)},
		),
	}
}

// ==================== SOCIAL ====================

func SocialMenu(stats *models.QuickStats) Card {
	return Card{
		Text: "👥 *Social Hub* 🌐\n\n" +
			fmt.Sprintf("🤝 Connect with %d football fans!\n\n", stats.TotalUsers) +
			"Find friends, follow players, and build your network.",
		Rows: Grid(nil, [][]Button{
			{{Label: "🔍 Find Players", Token: TokenSocialFind}, {Label: "👑 Leaderboard", Token: TokenSocialLeaderboard}},
			{{Label: "❤️ Following", Token: TokenSocialFollowing}, {Label: "👤 Followers", Token: TokenSocialFollowers}},
			{{Label: "🔙 Main Menu", Token: TokenMenu}},
		}),
	}
}

func userButtons(users []*models.User) [][]Button {
	rows := make([][]Button, 0, len(users))
	for _, u := range users {
		rows = append(rows, []Button{{
			Label: fmt.Sprintf("👤 %s (Lv.%d)", Truncate(u.DisplayName(), TruncateLength), u.Level),
			Token: withID(PrefixSocialView, u.TelegramID),
		}})
	}
	return rows
}

var socialActions = column(
	Button{Label: "🔙 Social", Token: TokenSocial},
	mainMenuButton,
)

func FindPlayers(users []*models.User) Card {
	text := "🔍 *Find Players*\n\nConnect with other football enthusiasts!\n\n"
	if len(users) == 0 {
		text += "You're already following everyone. Nice!"
	}
	return Card{Text: text, Rows: Grid(userButtons(users), socialActions)}
}

func Following(users []*models.User) Card {
	text := fmt.Sprintf("❤️ *Following (%d)*\n\n", len(users))
	if len(users) == 0 {
		text += "You're not following anyone yet. Use Find Players to connect!"
	}
	return Card{Text: text, Rows: Grid(userButtons(users), socialActions)}
}

func Followers(users []*models.User) Card {
	text := fmt.Sprintf("👤 *Followers (%d)*\n\n", len(users))
	if len(users) == 0 {
		text += "No followers yet. Be active to get noticed!"
	}
	return Card{Text: text, Rows: Grid(userButtons(users), socialActions)}
}

func levelProgress(u *models.User) (string, float64) {
	progress := models.ProgressFor(u.Level, u.Experience)
	return ProgressBar(progress.Percent, ProgressBarLength), progress.Percent
}

func writeBadges(b *strings.Builder, badges []*models.UserBadge, preview int) {
	if len(badges) == 0 {
		b.WriteString("🎯 *No badges yet!* Be active to earn achievements.\n")
		return
	}
	fmt.Fprintf(b, "🏆 *Badges (%d):*\n", len(badges))
	for i, badge := range badges {
		if i == preview {
			fmt.Fprintf(b, "... and %d more\n", len(badges)-preview)
			break
		}
		fmt.Fprintf(b, "• %s\n", badge.BadgeName)
	}
}

// UserProfile is another user's profile as seen by the viewer
func UserProfile(u *models.User, badges []*models.UserBadge, following, self bool) Card {
	bar, percent := levelProgress(u)
	you := ""
	if self {
		you = "(You)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👤 *%s* %s\n\n", displayName(u), you)
	fmt.Fprintf(&b, "🎯 *Level %d* • ⭐ %d Rep\n", u.Level, u.Reputation)
	fmt.Fprintf(&b, "%s %.0f%%\n", bar, percent)
	fmt.Fprintf(&b, "📝 %d threads • 💬 %d replies\n", u.ThreadsCreated, u.RepliesPosted)
	fmt.Fprintf(&b, "⚽ %d tournaments\n", u.TournamentsJoined)
	fmt.Fprintf(&b, "❤️ %d following • 👤 %d followers\n\n", u.Stats.FollowingCount, u.Stats.FollowerCount)
	writeBadges(&b, badges, 3)

	var actions []Button
	if !self {
		if following {
			actions = append(actions, Button{Label: "💔 Unfollow", Token: withID(PrefixSocialUnfollow, u.TelegramID)})
		} else {
			actions = append(actions, Button{Label: "❤️ Follow", Token: withID(PrefixSocialFollow, u.TelegramID)})
		}
	}
	actions = append(actions,
		Button{Label: "📝 View Threads", Token: withID(PrefixSocialThreads, u.TelegramID)},
		socialButton,
		Button{Label: "🔙 Main Menu", Token: TokenMenu},
	)

	return Card{Text: b.String(), Rows: Grid(nil, column(actions...))}
}

func UserThreads(u *models.User, threads []*models.Thread) Card {
	text := fmt.Sprintf("📝 *Threads by %s*\n\n", displayName(u))
	if len(threads) == 0 {
		text += "No threads yet."
	}

	return Card{
		Text: text,
		Rows: Grid(threadButtons(threads), column(
			Button{Label: "🔙 Profile", Token: withID(PrefixSocialView, u.TelegramID)},
			mainMenuButton,
		)),
	}
}

func Leaderboard(users []*models.User) Card {
	var b strings.Builder
	b.WriteString("👑 *Community Leaderboard*\n\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%s *%s* - Lv.%d • ⭐%d\n", medal(i+1), displayName(u), u.Level, u.Reputation)
	}

	return Card{
		Text: b.String(),
		Rows: Grid(nil, column(socialButton, mainMenuButton)),
	}
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("%d.", rank)
}

// ==================== PROFILE ====================

// OwnProfile is the viewer's own profile
func OwnProfile(u *models.User, badges []*models.UserBadge) Card {
	bar, percent := levelProgress(u)

	var b strings.Builder
	b.WriteString("👤 *Your Profile* 🏅\n\n")
	fmt.Fprintf(&b, "*%s* • Level %d\n", displayName(u), u.Level)
	fmt.Fprintf(&b, "%s %.0f%%\n", bar, percent)
	fmt.Fprintf(&b, "⭐ %d Reputation\n", u.Reputation)
	fmt.Fprintf(&b, "✨ %d XP\n\n", u.Experience)
	b.WriteString("📊 *Statistics:*\n")
	fmt.Fprintf(&b, "📝 %d threads created\n", u.ThreadsCreated)
	fmt.Fprintf(&b, "💬 %d replies posted\n", u.RepliesPosted)
	fmt.Fprintf(&b, "⚽ %d tournaments joined\n", u.TournamentsJoined)
	fmt.Fprintf(&b, "❤️ %d following\n", u.Stats.FollowingCount)
	fmt.Fprintf(&b, "👤 %d followers\n\n", u.Stats.FollowerCount)
	writeBadges(&b, badges, 5)

	return Card{
		Text: b.String(),
		Rows: Grid(nil, [][]Button{
			{{Label: "🏆 Badges", Token: TokenProfileBadges}, {Label: "📝 My Threads", Token: withID(PrefixSocialThreads, u.TelegramID)}},
			{{Label: "🔙 Main Menu", Token: TokenMenu}},
		}),
	}
}

// availableBadgePreview is how many catalogue badges the badges card lists
const availableBadgePreview = 5

func Badges(earned []*models.UserBadge, all []*models.Badge) Card {
	var b strings.Builder
	b.WriteString("🏆 *Your Badges Collection*\n\n")

	if len(earned) > 0 {
		fmt.Fprintf(&b, "🎖️ *Earned (%d/%d):*\n", len(earned), len(all))
		for _, badge := range earned {
			fmt.Fprintf(&b, "• %s\n", badge.BadgeName)
		}
	} else {
		b.WriteString("🎯 *No badges earned yet!*\n\n")
		b.WriteString("Be active in the community to earn achievements!\n")
	}

	b.WriteString("\n🔮 *Available Badges:*\n")
	for i, badge := range all {
		if i == availableBadgePreview {
			break
		}
		fmt.Fprintf(&b, "• %s - %s\n", badge.Name, badge.Description)
	}

	return Card{
		Text: b.String(),
		Rows: column(
			Button{Label: "🔙 Profile", Token: TokenProfile},
			mainMenuButton,
		),
	}
}

func LevelUp(level int) Card {
	return Card{
		Text: fmt.Sprintf("🎉 *Level Up!*\n\nYou reached level *%d*. Keep it going!", level),
		Rows: column(Button{Label: "👤 My Profile", Token: TokenProfile}, mainMenuButton),
	}
}

func BadgeEarned(name string) Card {
	return Card{
		Text: fmt.Sprintf("🏅 *New Badge!*\n\nYou earned *%s*.", Escape(name)),
		Rows: column(Button{Label: "🏅 My Badges", Token: TokenProfileBadges}, mainMenuButton),
	}
}
