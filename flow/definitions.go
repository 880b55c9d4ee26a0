package flow

import (
	"context"
	"fmt"
	"strconv"

	"clubhouse/bot/cards"
	"clubhouse/models"
	"clubhouse/service"
)

// Field names shared between the wizards and the cards that render them
const (
	FieldName        = "name"
	FieldGame        = "game"
	FieldMaxTeams    = "max_teams"
	FieldDescription = "description"
	FieldForumID     = "forum_id"
	FieldForumName   = "forum_name"
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldThreadID    = "thread_id"
	FieldThreadTitle = "thread_title"
	FieldPackageKey  = "package_key"
	FieldPackageName = "package_name"
	FieldPrice       = "price"
	FieldCode        = "code"
	FieldMessage     = "message"
)

// Step is one question of a wizard
type Step struct {
	Field    string
	Prompt   func(fields map[string]string) string
	Validate Validator
}

// Definition describes a wizard and its terminal write
type Definition struct {
	Kind     Kind
	Steps    []Step
	Reward   int64
	Complete func(ctx context.Context, userID int64, fields map[string]string) (any, error)
}

func fixedPrompt(text string) func(map[string]string) string {
	return func(map[string]string) string { return text }
}

func seedID(fields map[string]string, key string) (int64, error) {
	id, err := strconv.ParseInt(fields[key], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, fields[key], err)
	}
	return id, nil
}

// TournamentFlow collects name, game, team cap and description, then creates the tournament
func TournamentFlow(tournaments service.TournamentService) *Definition {
	return &Definition{
		Kind:   KindTournament,
		Reward: models.XPTournamentCreated,
		Steps: []Step{
			{
				Field:    FieldName,
				Prompt:   fixedPrompt("⚽ Tournament Creation Wizard\n\nStep 1/4: What should we name your tournament?\n\n💡 Example: 'FIFA 14 Champions League'\n\nType your answer below:"),
				Validate: NonEmpty(),
			},
			{
				Field:    FieldGame,
				Prompt:   fixedPrompt("Step 2/4: Which game version?\n\n💡 Examples: FIFA 14, eFootball 2025, FIFA 16\n\nType your answer below:"),
				Validate: NonEmpty(),
			},
			{
				Field:    FieldMaxTeams,
				Prompt:   fixedPrompt("Step 3/4: Maximum number of teams?\n\n💡 Enter a number (e.g., 16, 32)\n\nType your answer below:"),
				Validate: TeamCount(models.MinTournamentTeams, models.MaxTournamentTeams),
			},
			{
				Field:    FieldDescription,
				Prompt:   fixedPrompt("Step 4/4: Tournament description\n\n💡 Describe your tournament rules, format, etc.\n\nType your answer below:"),
				Validate: NonEmpty(),
			},
		},
		Complete: func(ctx context.Context, userID int64, fields map[string]string) (any, error) {
			maxTeams, err := strconv.Atoi(fields[FieldMaxTeams])
			if err != nil {
				return nil, fmt.Errorf("invalid team cap: %w", err)
			}
			return tournaments.CreateTournament(ctx, userID, fields[FieldName], fields[FieldGame], maxTeams, fields[FieldDescription])
		},
	}
}

// ThreadFlow collects a title and content for the seeded forum
func ThreadFlow(forums service.ForumService) *Definition {
	return &Definition{
		Kind:   KindThread,
		Reward: models.XPThreadCreated,
		Steps: []Step{
			{
				Field: FieldTitle,
				Prompt: func(fields map[string]string) string {
					return fmt.Sprintf("📝 Creating New Thread in *%s*\n\nStep 1/2: Enter the thread title:\n\nType your answer below:", cards.Escape(fields[FieldForumName]))
				},
				Validate: NonEmpty(),
			},
			{
				Field:    FieldContent,
				Prompt:   fixedPrompt("Step 2/2: Enter the thread content:\n\nType your answer below:"),
				Validate: NonEmpty(),
			},
		},
		Complete: func(ctx context.Context, userID int64, fields map[string]string) (any, error) {
			forumID, err := seedID(fields, FieldForumID)
			if err != nil {
				return nil, err
			}
			return forums.CreateThread(ctx, userID, forumID, fields[FieldTitle], fields[FieldContent])
		},
	}
}

// ReplyFlow collects the content of a reply to the seeded thread
func ReplyFlow(forums service.ForumService) *Definition {
	return &Definition{
		Kind:   KindReply,
		Reward: models.XPReplyPosted,
		Steps: []Step{
			{
				Field: FieldContent,
				Prompt: func(fields map[string]string) string {
					return fmt.Sprintf("💬 Writing Reply to: *%s*\n\nEnter your reply:\n\nType your answer below:", cards.Escape(fields[FieldThreadTitle]))
				},
				Validate: NonEmpty(),
			},
		},
		Complete: func(ctx context.Context, userID int64, fields map[string]string) (any, error) {
			threadID, err := seedID(fields, FieldThreadID)
			if err != nil {
				return nil, err
			}
			return forums.CreateReply(ctx, userID, threadID, fields[FieldContent])
		},
	}
}

// PaymentCodeFlow collects an M-Pesa transaction code and queues it for review
func PaymentCodeFlow(payments service.PaymentService) *Definition {
	return &Definition{
		Kind: KindPaymentCode,
		Steps: []Step{
			{
				Field: FieldCode,
				Prompt: func(fields map[string]string) string {
					if fields[FieldPackageName] == "" {
						return "💳 *Payment Verification*\n\nPlease enter your *M-Pesa transaction code* (e.g., QJD7H4XYZ1) below:"
					}
					return fmt.Sprintf("📦 *%s* booked (%s)\n\n💳 *Payment Verification*\n\nPay via M-Pesa, then enter your *M-Pesa transaction code* (e.g., QJD7H4XYZ1) below:",
						cards.Escape(fields[FieldPackageName]), fields[FieldPrice])
				},
				Validate: Matches(service.ValidPaymentCode, "⚠️ Invalid code format. Please send the correct M-Pesa code (e.g., QJD7H4XYZ1)."),
			},
		},
		Complete: func(ctx context.Context, userID int64, fields map[string]string) (any, error) {
			return payments.SubmitPayment(ctx, userID, fields[FieldName], fields[FieldCode])
		},
	}
}

// BroadcastResult is the aggregate outcome of a fan-out
type BroadcastResult struct {
	Delivered int
	Total     int
}

// BroadcastFunc delivers a message to every known user
type BroadcastFunc func(ctx context.Context, senderID int64, message string) (*BroadcastResult, error)

// BroadcastFlow collects one message from an admin and fans it out
func BroadcastFlow(send BroadcastFunc) *Definition {
	return &Definition{
		Kind: KindBroadcast,
		Steps: []Step{
			{
				Field:    FieldMessage,
				Prompt:   fixedPrompt("📢 Please send the message you want to broadcast to all users:"),
				Validate: NonEmpty(),
			},
		},
		Complete: func(ctx context.Context, userID int64, fields map[string]string) (any, error) {
			return send(ctx, userID, fields[FieldMessage])
		},
	}
}
