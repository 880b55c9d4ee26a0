package discord

import (
	"fmt"
	"testing"

	"clubhouse/bot"
	"clubhouse/bot/cards"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_ConvertsBold(t *testing.T) {
	card := cards.Message("🏆 *Spring Cup*\nescaped \\*star\\*")
	assert.Equal(t, "🏆 **Spring Cup**\nescaped \\*star\\*", Content(card))
}

func TestComponents_KeepsRows(t *testing.T) {
	card := cards.Card{Rows: [][]cards.Button{
		{{Label: "Join", Token: "tournament_join_1"}, {Label: "Cancel", Token: cards.TokenCancel}},
		{{Label: "Menu", Token: cards.TokenMenu}},
	}}

	components := Components(card)
	require.Len(t, components, 2)

	first := components[0].(discordgo.ActionsRow)
	require.Len(t, first.Components, 2)
	assert.Equal(t, "tournament_join_1", first.Components[0].(discordgo.Button).CustomID)
	assert.Equal(t, discordgo.DangerButton, first.Components[1].(discordgo.Button).Style)
}

func TestComponents_RepacksLongCards(t *testing.T) {
	var rows [][]cards.Button
	for i := 0; i < 8; i++ {
		rows = append(rows, []cards.Button{{Label: fmt.Sprintf("B%d", i), Token: fmt.Sprintf("forum_view_%d", i)}})
	}

	components := Components(cards.Card{Rows: rows})
	require.Len(t, components, 2)
	assert.Len(t, components[0].(discordgo.ActionsRow).Components, 5)
	assert.Len(t, components[1].(discordgo.ActionsRow).Components, 3)
}

func TestComponents_NoRows(t *testing.T) {
	assert.Nil(t, Components(cards.Message("plain")))
}

func TestMessageUpdate(t *testing.T) {
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "200",
		Content:   "/approve 5",
		Author:    &discordgo.User{ID: "100", Username: "ada", GlobalName: "Ada"},
	}}

	u, ok := MessageUpdate(m)
	require.True(t, ok)
	assert.Equal(t, bot.UpdateCommand, u.Kind)
	assert.Equal(t, int64(100), u.UserID)
	assert.Equal(t, int64(200), u.ChatID)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, []string{"5"}, u.Args)

	m.Author.Bot = true
	_, ok = MessageUpdate(m)
	assert.False(t, ok)
}

func TestMessageUpdate_GuildTextIsShared(t *testing.T) {
	m := &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "200",
		GuildID:   "900",
		Content:   "gg everyone",
		Author:    &discordgo.User{ID: "100", Username: "ada"},
	}}

	u, ok := MessageUpdate(m)
	require.True(t, ok)
	assert.Equal(t, bot.UpdateText, u.Kind)
	assert.True(t, u.Shared)

	m.GuildID = ""
	u, ok = MessageUpdate(m)
	require.True(t, ok)
	assert.False(t, u.Shared)
}

func TestInteractionUpdate(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "200",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "100", Username: "ada"}},
		Message:   &discordgo.Message{ID: "300"},
		Data:      discordgo.MessageComponentInteractionData{CustomID: "forum_follow_4"},
	}}

	u, ok := InteractionUpdate(i)
	require.True(t, ok)
	assert.Equal(t, bot.UpdateCallback, u.Kind)
	assert.Equal(t, int64(300), u.MessageID)
	assert.Equal(t, "forum_follow_4", u.Token)
	assert.Equal(t, "ada", u.FirstName)
}
