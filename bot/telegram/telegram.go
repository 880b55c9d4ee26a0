package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clubhouse/bot"
	"clubhouse/bot/cards"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// UpdateHandler processes platform-neutral updates
type UpdateHandler interface {
	Handle(ctx context.Context, u *bot.Update) error
}

// Client is the Telegram transport. It implements bot.Messenger.
type Client struct {
	api *tgbotapi.BotAPI
}

func New(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating telegram client: %w", err)
	}

	log.WithField("username", api.Self.UserName).Info("Authorized on Telegram")
	return &Client{api: api}, nil
}

func (c *Client) Send(ctx context.Context, chatID int64, card cards.Card) error {
	msg := tgbotapi.NewMessage(chatID, card.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup, ok := Keyboard(card); ok {
		msg.ReplyMarkup = markup
	}

	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

func (c *Client) Edit(ctx context.Context, chatID, messageID int64, card cards.Card) error {
	edit := tgbotapi.NewEditMessageText(chatID, int(messageID), card.Text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if markup, ok := Keyboard(card); ok {
		edit.ReplyMarkup = &markup
	}

	_, err := c.api.Send(edit)
	if isNotModified(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to edit message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

// Notify sends to the user's private chat, which shares the user's id
func (c *Client) Notify(ctx context.Context, userID int64, card cards.Card) error {
	return c.Send(ctx, userID, card)
}

// Keyboard renders card rows as an inline keyboard. It reports false for cards without buttons.
func Keyboard(card cards.Card) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(card.Rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(card.Rows))
	for _, row := range card.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// Telegram rejects edits that would leave a message unchanged
func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, "message is not modified")
	}
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// Convert maps a Telegram update to a bot update. Updates the bot does not
// act on, such as stickers or channel posts, report false.
func Convert(update tgbotapi.Update) (*bot.Update, bool) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
			return nil, false
		}
		u := bot.NewCallbackUpdate(cb.From.ID, cb.Message.Chat.ID, int64(cb.Message.MessageID), cb.Data)
		withUser(u, cb.From)
		return u, true

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil || msg.Chat == nil || msg.Text == "" {
			return nil, false
		}
		u := bot.NewMessageUpdate(msg.From.ID, msg.Chat.ID, msg.Text)
		u.Shared = !msg.Chat.IsPrivate()
		withUser(u, msg.From)
		return u, true
	}

	return nil, false
}

func withUser(u *bot.Update, from *tgbotapi.User) {
	u.Username = from.UserName
	u.FirstName = from.FirstName
	u.FullName = strings.TrimSpace(from.FirstName + " " + from.LastName)
}

// Process converts and handles one Telegram update, acknowledging button presses
func (c *Client) Process(ctx context.Context, h UpdateHandler, update tgbotapi.Update) error {
	u, ok := Convert(update)
	if !ok {
		log.WithField("telegram_update_id", update.UpdateID).Debug("Ignoring unsupported update")
		return nil
	}
	return c.handle(ctx, h, update, u)
}

func (c *Client) handle(ctx context.Context, h UpdateHandler, update tgbotapi.Update, u *bot.Update) error {
	if update.CallbackQuery != nil {
		if _, err := c.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			log.WithError(err).Warn("Failed to answer callback query")
		}
	}

	return h.Handle(ctx, u)
}
