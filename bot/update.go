package bot

import "strings"

// UpdateKind is the kind of inbound chat event
type UpdateKind string

const (
	UpdateCommand  UpdateKind = "command"
	UpdateText     UpdateKind = "text"
	UpdateCallback UpdateKind = "callback"
)

// Update is a platform-neutral inbound event
type Update struct {
	// ID correlates log lines for one update, assigned by Handle when empty
	ID string

	Kind      UpdateKind
	UserID    int64
	ChatID    int64
	MessageID int64

	Username  string
	FirstName string
	FullName  string

	Command string
	Args    []string
	Text    string
	Token   string

	// Shared is set for messages posted in a group or guild channel
	Shared bool
}

// ParseCommand splits "/name@bot arg1 arg2" into the command name and its arguments
func ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}

	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return "", nil, false
	}

	return strings.ToLower(name), fields[1:], true
}

// NewMessageUpdate classifies a chat message as a command or free text
func NewMessageUpdate(userID, chatID int64, text string) *Update {
	if name, args, ok := ParseCommand(text); ok {
		return &Update{
			Kind:    UpdateCommand,
			UserID:  userID,
			ChatID:  chatID,
			Command: name,
			Args:    args,
			Text:    text,
		}
	}

	return &Update{
		Kind:   UpdateText,
		UserID: userID,
		ChatID: chatID,
		Text:   text,
	}
}

// NewCallbackUpdate builds an update for a button press on messageID
func NewCallbackUpdate(userID, chatID, messageID int64, token string) *Update {
	return &Update{
		Kind:      UpdateCallback,
		UserID:    userID,
		ChatID:    chatID,
		MessageID: messageID,
		Token:     token,
	}
}
