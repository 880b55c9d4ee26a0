package service

import (
	"context"
	"fmt"
	"strings"

	"clubhouse/events"
	"clubhouse/models"

	"github.com/gosimple/slug"
)

// forumService implements the ForumService interface
type forumService struct {
	uowFactory UnitOfWorkFactory
}

// NewForumService creates a new forum service
func NewForumService(uowFactory UnitOfWorkFactory) ForumService {
	return &forumService{
		uowFactory: uowFactory,
	}
}

func (s *forumService) ListForums(ctx context.Context, featuredOnly bool) ([]*models.Forum, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	forums, err := uow.ForumRepository().List(ctx, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list forums: %w", err)
	}

	return forums, nil
}

func (s *forumService) GetForum(ctx context.Context, id int64) (*models.Forum, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return getForum(ctx, uow, id)
}

func getForum(ctx context.Context, uow UnitOfWork, id int64) (*models.Forum, error) {
	forum, err := uow.ForumRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get forum: %w", err)
	}
	if forum == nil {
		return nil, fmt.Errorf("forum %d: %w", id, ErrNotFound)
	}
	return forum, nil
}

// CreateForum adds a forum whose slug is derived from its name
func (s *forumService) CreateForum(ctx context.Context, name, category, description string) (*models.Forum, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContent
	}

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "general"
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	forum := &models.Forum{
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(description),
		Category:    category,
	}

	if err := uow.ForumRepository().Create(ctx, forum); err != nil {
		return nil, fmt.Errorf("failed to create forum: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return forum, nil
}

func (s *forumService) FollowForum(ctx context.Context, userID, forumID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getForum(ctx, uow, forumID); err != nil {
		return err
	}

	added, err := uow.ForumRepository().Follow(ctx, userID, forumID)
	if err != nil {
		return fmt.Errorf("failed to follow forum: %w", err)
	}
	if !added {
		return ErrAlreadyFollowing
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *forumService) UnfollowForum(ctx context.Context, userID, forumID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	removed, err := uow.ForumRepository().Unfollow(ctx, userID, forumID)
	if err != nil {
		return fmt.Errorf("failed to unfollow forum: %w", err)
	}
	if !removed {
		return ErrNotFollowing
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *forumService) GetFollowedForumIDs(ctx context.Context, userID int64) ([]int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ids, err := uow.ForumRepository().ListFollowedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed forums: %w", err)
	}

	return ids, nil
}

func (s *forumService) ListFollowedForums(ctx context.Context, userID int64) ([]*models.Forum, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	forums, err := uow.ForumRepository().ListFollowed(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed forums: %w", err)
	}

	return forums, nil
}

func (s *forumService) ListThreads(ctx context.Context, forumID int64, limit int) ([]*models.Thread, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	threads, err := uow.ThreadRepository().ListByForum(ctx, forumID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	return threads, nil
}

func (s *forumService) ListUserThreads(ctx context.Context, userID int64, limit int) ([]*models.Thread, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	threads, err := uow.ThreadRepository().ListByCreator(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user threads: %w", err)
	}

	return threads, nil
}

// CreateThread stores the thread and updates the forum and author counters together
func (s *forumService) CreateThread(ctx context.Context, creatorID, forumID int64, title, content string) (*models.Thread, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrEmptyContent
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	forum, err := getForum(ctx, uow, forumID)
	if err != nil {
		return nil, err
	}

	thread := &models.Thread{
		Title:     title,
		Content:   content,
		ForumID:   forumID,
		CreatorID: creatorID,
	}

	if err := uow.ThreadRepository().Create(ctx, thread); err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	if err := uow.ForumRepository().IncrementThreadCount(ctx, forumID, 1); err != nil {
		return nil, fmt.Errorf("failed to update forum: %w", err)
	}

	threadsCreated, err := uow.UserRepository().IncrementCounter(ctx, creatorID, models.CounterThreadsCreated, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to update threads created: %w", err)
	}

	if _, err := uow.UserRepository().IncrementStat(ctx, creatorID, models.StatsPostCount, 1); err != nil {
		return nil, fmt.Errorf("failed to update post count: %w", err)
	}

	uow.EventBus().Publish(events.ThreadCreatedEvent{
		ThreadID:       thread.ID,
		ForumID:        forumID,
		CreatorID:      creatorID,
		Title:          title,
		ThreadsCreated: threadsCreated,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	thread.ForumName = forum.Name
	return thread, nil
}

// ViewThread returns the thread and counts the view
func (s *forumService) ViewThread(ctx context.Context, id int64) (*models.Thread, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	thread, err := getThread(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := uow.ThreadRepository().IncrementViews(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to count view: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	thread.Views++
	return thread, nil
}

func (s *forumService) GetThread(ctx context.Context, id int64) (*models.Thread, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return getThread(ctx, uow, id)
}

func getThread(ctx context.Context, uow UnitOfWork, id int64) (*models.Thread, error) {
	thread, err := uow.ThreadRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}
	if thread == nil {
		return nil, fmt.Errorf("thread %d: %w", id, ErrNotFound)
	}
	return thread, nil
}

func (s *forumService) ListReplies(ctx context.Context, threadID int64, limit int) ([]*models.Reply, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	replies, err := uow.ReplyRepository().ListByThread(ctx, threadID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	return replies, nil
}

// CreateReply stores the reply and updates the thread, forum and author counters together
func (s *forumService) CreateReply(ctx context.Context, userID, threadID int64, content string) (*models.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	thread, err := getThread(ctx, uow, threadID)
	if err != nil {
		return nil, err
	}
	if thread.IsLocked {
		return nil, ErrThreadLocked
	}

	reply := &models.Reply{
		Content:  content,
		ThreadID: threadID,
		UserID:   userID,
	}

	if err := uow.ReplyRepository().Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	if err := uow.ThreadRepository().RecordReply(ctx, threadID); err != nil {
		return nil, fmt.Errorf("failed to update thread: %w", err)
	}

	if err := uow.ForumRepository().IncrementReplyCount(ctx, thread.ForumID, 1); err != nil {
		return nil, fmt.Errorf("failed to update forum: %w", err)
	}

	repliesPosted, err := uow.UserRepository().IncrementCounter(ctx, userID, models.CounterRepliesPosted, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to update replies posted: %w", err)
	}

	if _, err := uow.UserRepository().IncrementStat(ctx, userID, models.StatsPostCount, 1); err != nil {
		return nil, fmt.Errorf("failed to update post count: %w", err)
	}

	uow.EventBus().Publish(events.ReplyPostedEvent{
		ReplyID:       reply.ID,
		ThreadID:      threadID,
		UserID:        userID,
		RepliesPosted: repliesPosted,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return reply, nil
}
