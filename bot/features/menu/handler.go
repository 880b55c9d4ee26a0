package menu

import (
	"context"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/models"
)

// Start greets the user; registration already happened when the update arrived
func (f *Feature) Start(firstName string) cards.Card {
	return cards.Welcome(firstName)
}

func (f *Feature) Menu(ctx context.Context, user *models.User) (cards.Card, error) {
	stats, err := f.userService.GetQuickStats(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load community stats", err)
	}
	return cards.MainMenu(user, stats), nil
}

func (f *Feature) Help() cards.Card {
	return cards.Help()
}
