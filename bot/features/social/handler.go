package social

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/models"
	"clubhouse/service"
)

func (f *Feature) Menu(ctx context.Context) (cards.Card, error) {
	stats, err := f.userService.GetQuickStats(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load community stats", err)
	}
	return cards.SocialMenu(stats), nil
}

func (f *Feature) Find(ctx context.Context, userID int64) (cards.Card, error) {
	users, err := f.userService.FindPlayers(ctx, userID, findLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to find players", err)
	}
	return cards.FindPlayers(users), nil
}

func (f *Feature) Following(ctx context.Context, userID int64) (cards.Card, error) {
	users, err := f.socialService.ListFollowing(ctx, userID, listLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list following", err)
	}
	return cards.Following(users), nil
}

func (f *Feature) Followers(ctx context.Context, userID int64) (cards.Card, error) {
	users, err := f.socialService.ListFollowers(ctx, userID, listLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list followers", err)
	}
	return cards.Followers(users), nil
}

func (f *Feature) Leaderboard(ctx context.Context) (cards.Card, error) {
	users, err := f.userService.GetRankings(ctx, models.RankByReputation, leaderboardLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load rankings", err)
	}
	return cards.Leaderboard(users), nil
}

// View shows targetID's profile as seen by viewerID
func (f *Feature) View(ctx context.Context, viewerID, targetID int64) (cards.Card, error) {
	user, err := f.userService.GetUser(ctx, targetID)
	if err != nil {
		return cards.Card{}, mapError(err)
	}

	badges, err := f.badgeService.ListUserBadges(ctx, targetID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list badges", err)
	}

	self := viewerID == targetID
	following := false
	if !self {
		following, err = f.socialService.IsFollowing(ctx, viewerID, targetID)
		if err != nil {
			return cards.Card{}, common.InternalError("failed to check follow status", err)
		}
	}

	return cards.UserProfile(user, badges, following, self), nil
}

func (f *Feature) Follow(ctx context.Context, viewerID, targetID int64) (cards.Card, error) {
	if err := f.socialService.FollowUser(ctx, viewerID, targetID); err != nil {
		return cards.Card{}, mapError(err)
	}

	return cards.Success(
		"User Followed!",
		"You're now following this user.",
		fmt.Sprintf("%s%d", cards.PrefixSocialView, targetID),
	), nil
}

func (f *Feature) Unfollow(ctx context.Context, viewerID, targetID int64) (cards.Card, error) {
	if err := f.socialService.UnfollowUser(ctx, viewerID, targetID); err != nil {
		return cards.Card{}, mapError(err)
	}

	return cards.Success(
		"User Unfollowed",
		"You're no longer following this user.",
		fmt.Sprintf("%s%d", cards.PrefixSocialView, targetID),
	), nil
}

func (f *Feature) Threads(ctx context.Context, targetID int64) (cards.Card, error) {
	user, err := f.userService.GetUser(ctx, targetID)
	if err != nil {
		return cards.Card{}, mapError(err)
	}

	threads, err := f.forumService.ListUserThreads(ctx, targetID, threadLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list user threads", err)
	}

	return cards.UserThreads(user, threads), nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return common.UserError("User not found", err)
	case errors.Is(err, service.ErrSelfFollow):
		return common.UserError("You can't follow yourself.", err)
	case errors.Is(err, service.ErrAlreadyFollowing):
		return common.UserError("You're already following this user.", err)
	case errors.Is(err, service.ErrNotFollowing):
		return common.UserError("You're not following this user.", err)
	}
	return common.InternalError("social operation failed", err)
}
