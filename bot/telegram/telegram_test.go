package telegram

import (
	"errors"
	"testing"

	"clubhouse/bot"
	"clubhouse/bot/cards"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Command(t *testing.T) {
	update := tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      &tgbotapi.User{ID: 42, FirstName: "Ada", LastName: "Lovelace", UserName: "ada"},
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      "/setprice@ClubBot single 2500",
		},
	}

	u, ok := Convert(update)
	require.True(t, ok)
	assert.Equal(t, bot.UpdateCommand, u.Kind)
	assert.Equal(t, "setprice", u.Command)
	assert.Equal(t, []string{"single", "2500"}, u.Args)
	assert.Equal(t, int64(42), u.UserID)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Ada Lovelace", u.FullName)
}

func TestConvert_Text(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 7, FirstName: "Bo"},
			Chat: &tgbotapi.Chat{ID: -100},
			Text: "Champions League",
		},
	}

	u, ok := Convert(update)
	require.True(t, ok)
	assert.Equal(t, bot.UpdateText, u.Kind)
	assert.Equal(t, int64(-100), u.ChatID)
	assert.Equal(t, "Champions League", u.Text)
	assert.Equal(t, "Bo", u.FullName)
	assert.True(t, u.Shared)
}

func TestConvert_PrivateTextIsNotShared(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 7, FirstName: "Bo"},
			Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
			Text: "Champions League",
		},
	}

	u, ok := Convert(update)
	require.True(t, ok)
	assert.False(t, u.Shared)
}

func TestConvert_Callback(t *testing.T) {
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb",
			From: &tgbotapi.User{ID: 7},
			Message: &tgbotapi.Message{
				MessageID: 99,
				Chat:      &tgbotapi.Chat{ID: 7},
			},
			Data: "tournament_join_3",
		},
	}

	u, ok := Convert(update)
	require.True(t, ok)
	assert.Equal(t, bot.UpdateCallback, u.Kind)
	assert.Equal(t, int64(99), u.MessageID)
	assert.Equal(t, "tournament_join_3", u.Token)
}

func TestConvert_Unsupported(t *testing.T) {
	cases := []tgbotapi.Update{
		{},
		{Message: &tgbotapi.Message{From: &tgbotapi.User{ID: 1}, Chat: &tgbotapi.Chat{ID: 1}}},
		{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hi"}},
		{CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 1}, Data: "menu"}},
	}

	for _, update := range cases {
		_, ok := Convert(update)
		assert.False(t, ok)
	}
}

func TestKeyboard(t *testing.T) {
	_, ok := Keyboard(cards.Message("plain"))
	assert.False(t, ok)

	card := cards.Card{
		Text: "x",
		Rows: [][]cards.Button{
			{{Label: "A", Token: "a"}, {Label: "B", Token: "b"}},
			{{Label: "Menu", Token: cards.TokenMenu}},
		},
	}

	markup, ok := Keyboard(card)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "B", markup.InlineKeyboard[0][1].Text)
	require.NotNil(t, markup.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, cards.TokenMenu, *markup.InlineKeyboard[1][0].CallbackData)
}

func TestIsNotModified(t *testing.T) {
	assert.True(t, isNotModified(&tgbotapi.Error{Code: 400, Message: "Bad Request: message is not modified"}))
	assert.False(t, isNotModified(errors.New("Forbidden: bot was blocked by the user")))
	assert.False(t, isNotModified(nil))
}
