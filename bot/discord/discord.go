package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"clubhouse/bot"
	"clubhouse/bot/cards"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// UpdateHandler processes platform-neutral updates
type UpdateHandler interface {
	Handle(ctx context.Context, u *bot.Update) error
}

// Client is the Discord transport. It implements bot.Messenger.
type Client struct {
	session *discordgo.Session
	seq     *bot.Sequencer
	ctx     context.Context
	handler UpdateHandler
}

func New(token string) (*Client, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	// Handlers only queue work, so gateway events are taken in order
	dg.SyncEvents = true

	return &Client{session: dg, seq: bot.NewSequencer()}, nil
}

// Start registers the gateway handlers and opens the websocket connection
func (c *Client) Start(ctx context.Context, h UpdateHandler) error {
	c.ctx = ctx
	c.handler = h

	c.session.AddHandler(c.handleMessage)
	c.session.AddHandler(c.handleInteraction)

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if c.session.State != nil && c.session.State.User != nil {
		log.WithField("username", c.session.State.User.Username).Info("Connected to Discord gateway")
	}
	return nil
}

// Close disconnects from the gateway and waits for queued updates
func (c *Client) Close() error {
	err := c.session.Close()
	c.seq.Wait()
	return err
}

func (c *Client) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	u, ok := MessageUpdate(m)
	if !ok {
		return
	}
	c.dispatch(u)
}

func (c *Client) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	u, ok := InteractionUpdate(i)
	if !ok {
		return
	}

	// The edit happens after the handler runs, so acknowledge now
	if err := deferUpdate(s, i); err != nil {
		log.WithError(err).Warn("Failed to acknowledge interaction")
	}

	c.dispatch(u)
}

func (c *Client) dispatch(u *bot.Update) {
	c.seq.Submit(u.UserID, func() {
		if err := c.handler.Handle(c.ctx, u); err != nil {
			log.WithFields(log.Fields{
				"update_id": u.ID,
				"user_id":   u.UserID,
				"error":     err,
			}).Error("Failed to handle update")
		}
	})
}

func deferUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// MessageUpdate converts a chat message. Bot authors and empty messages report false.
func MessageUpdate(m *discordgo.MessageCreate) (*bot.Update, bool) {
	if m.Author == nil || m.Author.Bot || strings.TrimSpace(m.Content) == "" {
		return nil, false
	}

	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return nil, false
	}
	chatID, err := strconv.ParseInt(m.ChannelID, 10, 64)
	if err != nil {
		return nil, false
	}

	u := bot.NewMessageUpdate(userID, chatID, m.Content)
	u.Shared = m.GuildID != ""
	withUser(u, m.Author)
	return u, true
}

// InteractionUpdate converts a button press into a callback update
func InteractionUpdate(i *discordgo.InteractionCreate) (*bot.Update, bool) {
	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}
	if user == nil || i.Message == nil {
		return nil, false
	}

	userID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return nil, false
	}
	chatID, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		return nil, false
	}
	messageID, err := strconv.ParseInt(i.Message.ID, 10, 64)
	if err != nil {
		return nil, false
	}

	u := bot.NewCallbackUpdate(userID, chatID, messageID, i.MessageComponentData().CustomID)
	withUser(u, user)
	return u, true
}

func withUser(u *bot.Update, user *discordgo.User) {
	u.Username = user.Username
	u.FirstName = user.GlobalName
	if u.FirstName == "" {
		u.FirstName = user.Username
	}
	u.FullName = u.FirstName
}

func (c *Client) Send(ctx context.Context, chatID int64, card cards.Card) error {
	channelID := strconv.FormatInt(chatID, 10)

	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    Content(card),
		Components: Components(card),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

func (c *Client) Edit(ctx context.Context, chatID, messageID int64, card cards.Card) error {
	edit := discordgo.NewMessageEdit(strconv.FormatInt(chatID, 10), strconv.FormatInt(messageID, 10))
	edit.SetContent(Content(card))

	components := Components(card)
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	edit.Components = &components

	if _, err := c.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit message %d: %w", messageID, err)
	}
	return nil
}

// Notify opens (or reuses) the user's DM channel and sends the card there
func (c *Client) Notify(ctx context.Context, userID int64, card cards.Card) error {
	channel, err := c.session.UserChannelCreate(strconv.FormatInt(userID, 10), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel for %d: %w", userID, err)
	}

	chatID, err := strconv.ParseInt(channel.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid DM channel id %q: %w", channel.ID, err)
	}
	return c.Send(ctx, chatID, card)
}
