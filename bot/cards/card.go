package cards

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Layout budgets
const (
	TruncateLength    = 35
	MinTruncateLength = len("...")
	ProgressBarLength = 10
	MaxButtonsPerRow  = 2
	MaxRowsPerCard    = 8
)

// Button is an inline button carrying a callback token
type Button struct {
	Label string
	Token string
}

// Card is a Markdown message with inline button rows
type Card struct {
	Text string
	Rows [][]Button
}

// Navigation tokens used across cards
const (
	TokenMenu   = "menu"
	TokenHelp   = "help"
	TokenCancel = "cancel"
)

var (
	mainMenuButton = Button{Label: "🏠 Main Menu", Token: TokenMenu}
	cancelButton   = Button{Label: "❌ Cancel", Token: TokenCancel}
)

// Truncate shortens text to at most max runes, ending with an ellipsis when
// cut. Budgets below MinTruncateLength are raised to it so a cut text always
// carries the ellipsis.
func Truncate(text string, max int) string {
	if max < MinTruncateLength {
		max = MinTruncateLength
	}

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-MinTruncateLength]) + "..."
}

// ProgressBar renders percent as length squares, filled squares first
func ProgressBar(percent float64, length int) string {
	if length <= 0 {
		return ""
	}
	if percent < 0 || math.IsNaN(percent) {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(math.Floor(percent * float64(length) / 100))
	return strings.Repeat("🟩", filled) + strings.Repeat("⬜", length-filled)
}

// Grid lays out content rows followed by action rows. Rows wider than
// MaxButtonsPerRow wrap; when the card is over MaxRowsPerCard, trailing content
// rows go first.
func Grid(content [][]Button, actions [][]Button) [][]Button {
	contentRows := wrap(content)
	actionRows := wrap(actions)

	if len(actionRows) > MaxRowsPerCard {
		actionRows = actionRows[:MaxRowsPerCard]
	}
	if room := MaxRowsPerCard - len(actionRows); len(contentRows) > room {
		contentRows = contentRows[:room]
	}

	rows := make([][]Button, 0, len(contentRows)+len(actionRows))
	rows = append(rows, contentRows...)
	rows = append(rows, actionRows...)
	return rows
}

func wrap(rows [][]Button) [][]Button {
	var out [][]Button
	for _, row := range rows {
		for start := 0; start < len(row); start += MaxButtonsPerRow {
			end := start + MaxButtonsPerRow
			if end > len(row) {
				end = len(row)
			}
			out = append(out, row[start:end])
		}
	}
	return out
}

// column puts each button on its own row
func column(buttons ...Button) [][]Button {
	rows := make([][]Button, 0, len(buttons))
	for _, b := range buttons {
		rows = append(rows, []Button{b})
	}
	return rows
}

func withID(prefix string, id int64) string {
	return fmt.Sprintf("%s%d", prefix, id)
}

var titleCaser = cases.Title(language.English)

// Title upper-cases the first letter of every word
func Title(s string) string {
	return titleCaser.String(s)
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// Escape protects user supplied text from being parsed as Markdown
func Escape(s string) string {
	return markdownEscaper.Replace(s)
}

// Message is a plain text card without buttons
func Message(text string) Card {
	return Card{Text: text}
}

// Error is the generic failure card
func Error(message string) Card {
	return Card{
		Text: "❌ *Oops!*\n\n" + message,
		Rows: [][]Button{{mainMenuButton}},
	}
}

// Success confirms an action and links back to returnTo
func Success(title, message, returnTo string) Card {
	if returnTo == "" {
		returnTo = TokenMenu
	}
	return Card{
		Text: fmt.Sprintf("✅ *%s*\n\n%s", title, message),
		Rows: column(
			Button{Label: "🔙 Back", Token: returnTo},
			mainMenuButton,
		),
	}
}

// Messages shown by the router when nothing more specific applies
const (
	UnknownCommandMessage = "Unknown command. Please try again."
	GenericErrorMessage   = "An error occurred. Please try again."
	AdminOnlyMessage      = "🚫 Admin access only."
	CancelledMessage      = "❌ Operation cancelled."
	FlowActiveMessage     = "⚠️ You're in the middle of another operation. Use /cancel to cancel it first."
)

func UnknownCommand() Card {
	return Error(UnknownCommandMessage)
}

func GenericError() Card {
	return Error(GenericErrorMessage)
}

func AdminOnly() Card {
	return Message(AdminOnlyMessage)
}

func Cancelled() Card {
	return Card{
		Text: CancelledMessage,
		Rows: [][]Button{{mainMenuButton}},
	}
}

func FlowActive() Card {
	return Card{
		Text: FlowActiveMessage,
		Rows: [][]Button{{cancelButton}},
	}
}

// FlowPrompt shows a wizard question with a cancel button
func FlowPrompt(text string) Card {
	return Card{
		Text: text,
		Rows: [][]Button{{cancelButton}},
	}
}

func Help() Card {
	return Card{
		Text: "🆘 *SoccerForum Bot Help*\n\n" +
			"🎯 *Quick Actions:*\n" +
			"• Use buttons to navigate\n" +
			"• Join tournaments easily\n" +
			"• Create discussions in forums\n\n" +
			"📱 *Main Features:*\n" +
			"⚽ *Tournaments* - Competitive events\n" +
			"💬 *Forums* - Game discussions\n" +
			"👥 *Social* - Connect with players\n" +
			"👤 *Profile* - Your stats & achievements\n" +
			"📘 *Papers* - KCSE prediction papers via /dashboard\n\n" +
			"Need help? Use /menu to return to main menu!",
		Rows: [][]Button{{mainMenuButton}},
	}
}

// Welcome greets a user on /start
func Welcome(firstName string) Card {
	if firstName == "" {
		firstName = "Player"
	}
	return Card{
		Text: fmt.Sprintf("👋 Welcome to *SoccerForum*, %s! 🎉\n\n", Escape(firstName)) +
			"⚽ *Your ultimate football community!*\n\n" +
			"🎮 Discuss games • 🏆 Join tournaments • 👥 Make friends\n\n" +
			"📅 Book *KCSE 2025 Prediction Papers* with /dashboard.\n\n" +
			"Ready to get started?",
		Rows: column(
			Button{Label: "🚀 Get Started", Token: TokenMenu},
			Button{Label: "📚 Quick Guide", Token: TokenHelp},
		),
	}
}
