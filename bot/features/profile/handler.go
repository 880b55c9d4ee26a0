package profile

import (
	"context"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
)

func (f *Feature) Profile(ctx context.Context, userID int64) (cards.Card, error) {
	user, err := f.userService.GetUser(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load profile", err)
	}

	badges, err := f.badgeService.ListUserBadges(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list badges", err)
	}

	return cards.OwnProfile(user, badges), nil
}

func (f *Feature) Badges(ctx context.Context, userID int64) (cards.Card, error) {
	earned, err := f.badgeService.ListUserBadges(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list badges", err)
	}

	all, err := f.badgeService.ListBadges(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list badge catalogue", err)
	}

	return cards.Badges(earned, all), nil
}
