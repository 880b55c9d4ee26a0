package forums

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/flow"
	"clubhouse/service"
)

func (f *Feature) Menu(ctx context.Context, userID int64) (cards.Card, error) {
	forums, err := f.forumService.ListForums(ctx, true)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list forums", err)
	}

	followed, err := f.followedSet(ctx, userID)
	if err != nil {
		return cards.Card{}, err
	}

	stats, err := f.userService.GetQuickStats(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load community stats", err)
	}

	return cards.ForumsMenu(forums, followed, stats), nil
}

func (f *Feature) Mine(ctx context.Context, userID int64) (cards.Card, error) {
	forums, err := f.forumService.ListFollowedForums(ctx, userID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list followed forums", err)
	}
	return cards.MyForums(forums), nil
}

func (f *Feature) View(ctx context.Context, userID, forumID int64) (cards.Card, error) {
	forum, err := f.forumService.GetForum(ctx, forumID)
	if err != nil {
		return cards.Card{}, mapForumError(err)
	}

	threads, err := f.forumService.ListThreads(ctx, forumID, recentThreads)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list threads", err)
	}

	followed, err := f.followedSet(ctx, userID)
	if err != nil {
		return cards.Card{}, err
	}

	return cards.ForumCard(forum, threads, followed[forumID]), nil
}

func (f *Feature) Follow(ctx context.Context, userID, forumID int64) (cards.Card, error) {
	if err := f.forumService.FollowForum(ctx, userID, forumID); err != nil {
		return cards.Card{}, mapForumError(err)
	}

	return cards.Success(
		"Forum Followed!",
		"You'll now receive updates from this forum.",
		fmt.Sprintf("%s%d", cards.PrefixForumView, forumID),
	), nil
}

func (f *Feature) Unfollow(ctx context.Context, userID, forumID int64) (cards.Card, error) {
	if err := f.forumService.UnfollowForum(ctx, userID, forumID); err != nil {
		return cards.Card{}, mapForumError(err)
	}

	return cards.Success(
		"Forum Unfollowed",
		"You will no longer receive updates from this forum.",
		fmt.Sprintf("%s%d", cards.PrefixForumView, forumID),
	), nil
}

func (f *Feature) Threads(ctx context.Context, forumID int64) (cards.Card, error) {
	forum, err := f.forumService.GetForum(ctx, forumID)
	if err != nil {
		return cards.Card{}, mapForumError(err)
	}

	threads, err := f.forumService.ListThreads(ctx, forumID, threadPage)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list threads", err)
	}

	return cards.ThreadList(forum, threads), nil
}

func (f *Feature) CreateThread(ctx context.Context, userID, forumID int64) (cards.Card, error) {
	forum, err := f.forumService.GetForum(ctx, forumID)
	if err != nil {
		return cards.Card{}, mapForumError(err)
	}

	return common.StartFlow(ctx, f.flows, userID, flow.KindThread, map[string]string{
		flow.FieldForumID:   strconv.FormatInt(forum.ID, 10),
		flow.FieldForumName: forum.Name,
	})
}

func (f *Feature) ViewThread(ctx context.Context, threadID int64) (cards.Card, error) {
	thread, err := f.forumService.ViewThread(ctx, threadID)
	if err != nil {
		return cards.Card{}, mapThreadError(err)
	}

	replies, err := f.forumService.ListReplies(ctx, threadID, replyPreview)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list replies", err)
	}

	return cards.ThreadCard(thread, replies), nil
}

func (f *Feature) Replies(ctx context.Context, threadID int64) (cards.Card, error) {
	thread, err := f.forumService.GetThread(ctx, threadID)
	if err != nil {
		return cards.Card{}, mapThreadError(err)
	}

	replies, err := f.forumService.ListReplies(ctx, threadID, replyPage)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list replies", err)
	}

	return cards.RepliesList(thread, replies), nil
}

func (f *Feature) CreateReply(ctx context.Context, userID, threadID int64) (cards.Card, error) {
	thread, err := f.forumService.GetThread(ctx, threadID)
	if err != nil {
		return cards.Card{}, mapThreadError(err)
	}
	if thread.IsLocked {
		return cards.Card{}, common.UserError("This thread is locked.", service.ErrThreadLocked)
	}

	return common.StartFlow(ctx, f.flows, userID, flow.KindReply, map[string]string{
		flow.FieldThreadID:    strconv.FormatInt(thread.ID, 10),
		flow.FieldThreadTitle: thread.Title,
		flow.FieldForumID:     strconv.FormatInt(thread.ForumID, 10),
	})
}

func (f *Feature) followedSet(ctx context.Context, userID int64) (map[int64]bool, error) {
	ids, err := f.forumService.GetFollowedForumIDs(ctx, userID)
	if err != nil {
		return nil, common.InternalError("failed to list followed forums", err)
	}

	followed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

func mapForumError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return common.UserError("Forum not found", err)
	case errors.Is(err, service.ErrAlreadyFollowing):
		return common.UserError("Already following this forum.", err)
	case errors.Is(err, service.ErrNotFollowing):
		return common.UserError("You're not following this forum.", err)
	}
	return common.InternalError("forum operation failed", err)
}

func mapThreadError(err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return common.UserError("Thread not found", err)
	}
	return common.InternalError("thread operation failed", err)
}
