package discord

import (
	"strings"

	"clubhouse/bot/cards"

	"github.com/bwmarrin/discordgo"
)

// Discord message limits
const (
	maxContentLength  = 2000
	maxLabelLength    = 80
	maxCustomIDLength = 100
	maxRows           = 5
	maxButtonsPerRow  = 5
)

var boldReplacer = strings.NewReplacer("\\*", "\\*", "*", "**")

// Content converts the card's single-asterisk bold into Discord's double
// asterisks and cuts it to the message limit
func Content(card cards.Card) string {
	return cards.Truncate(boldReplacer.Replace(card.Text), maxContentLength)
}

// Components renders card rows as button rows. Cards with more rows than
// Discord allows are repacked with up to five buttons per row; buttons that
// still do not fit are dropped from the front so the trailing navigation
// buttons survive.
func Components(card cards.Card) []discordgo.MessageComponent {
	if len(card.Rows) == 0 {
		return nil
	}

	rows := card.Rows
	if len(rows) > maxRows {
		rows = repack(rows)
	}

	components := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, b := range row {
			if len(b.Token) > maxCustomIDLength {
				continue
			}
			buttons = append(buttons, discordgo.Button{
				Label:    cards.Truncate(b.Label, maxLabelLength),
				Style:    buttonStyle(b),
				CustomID: b.Token,
			})
		}
		if len(buttons) > 0 {
			components = append(components, discordgo.ActionsRow{Components: buttons})
		}
	}
	return components
}

func repack(rows [][]cards.Button) [][]cards.Button {
	var flat []cards.Button
	for _, row := range rows {
		flat = append(flat, row...)
	}

	if limit := maxRows * maxButtonsPerRow; len(flat) > limit {
		flat = flat[len(flat)-limit:]
	}

	var packed [][]cards.Button
	for len(flat) > 0 {
		n := min(maxButtonsPerRow, len(flat))
		packed = append(packed, flat[:n])
		flat = flat[n:]
	}
	return packed
}

func buttonStyle(b cards.Button) discordgo.ButtonStyle {
	switch b.Token {
	case cards.TokenCancel:
		return discordgo.DangerButton
	case cards.TokenMenu:
		return discordgo.SecondaryButton
	}
	return discordgo.PrimaryButton
}
