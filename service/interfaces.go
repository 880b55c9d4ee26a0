package service

import (
	"context"

	"clubhouse/events"
	"clubhouse/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByTelegramID retrieves a user with their social stats, nil when absent
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)

	// Create creates a new user together with an empty stats row
	Create(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error)

	// UpdateProfile refreshes the display names and last activity time
	UpdateProfile(ctx context.Context, telegramID int64, username, fullName string) error

	// AddExperience adds experience and returns the new total and the stored level
	AddExperience(ctx context.Context, telegramID int64, amount int64) (experience int64, level int, err error)

	// SetLevel stores a recomputed level
	SetLevel(ctx context.Context, telegramID int64, level int) error

	// IncrementCounter adjusts a progression counter and returns its new value
	IncrementCounter(ctx context.Context, telegramID int64, counter models.UserCounter, delta int) (int, error)

	// IncrementStat adjusts a user_stats counter and returns its new value
	IncrementStat(ctx context.Context, telegramID int64, counter models.StatsCounter, delta int) (int, error)

	// SetPendingPackage records the package a user selected for booking
	SetPendingPackage(ctx context.Context, telegramID int64, packageKey string) error

	// MarkPaid sets the paid flag and the approved package
	MarkPaid(ctx context.Context, telegramID int64, packageKey string) error

	// GetRankings returns users ordered by the given criteria
	GetRankings(ctx context.Context, criteria models.RankingCriteria, limit int) ([]*models.User, error)

	// ListDiscoverable returns users the viewer does not follow yet, excluding the viewer
	ListDiscoverable(ctx context.Context, viewerID int64, limit int) ([]*models.User, error)

	// GetAllIDs returns every known user id
	GetAllIDs(ctx context.Context) ([]int64, error)

	// GetQuickStats returns community-wide totals
	GetQuickStats(ctx context.Context) (*models.QuickStats, error)
}

// ForumRepository defines the interface for forum data access
type ForumRepository interface {
	// List returns forums ordered by thread count
	List(ctx context.Context, featuredOnly bool) ([]*models.Forum, error)

	// GetByID retrieves a forum, nil when absent
	GetByID(ctx context.Context, id int64) (*models.Forum, error)

	// Create inserts a forum and fills its id and creation time
	Create(ctx context.Context, forum *models.Forum) error

	// IncrementThreadCount adjusts the forum's thread counter
	IncrementThreadCount(ctx context.Context, id int64, delta int) error

	// IncrementReplyCount adjusts the forum's reply counter
	IncrementReplyCount(ctx context.Context, id int64, delta int) error

	// Follow records a forum follow, false when it already existed
	Follow(ctx context.Context, userID, forumID int64) (bool, error)

	// Unfollow removes a forum follow, false when there was none
	Unfollow(ctx context.Context, userID, forumID int64) (bool, error)

	// ListFollowedIDs returns the ids of forums a user follows
	ListFollowedIDs(ctx context.Context, userID int64) ([]int64, error)

	// ListFollowed returns the forums a user follows
	ListFollowed(ctx context.Context, userID int64) ([]*models.Forum, error)
}

// ThreadRepository defines the interface for thread data access
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread) error
	GetByID(ctx context.Context, id int64) (*models.Thread, error)
	IncrementViews(ctx context.Context, id int64) error
	RecordReply(ctx context.Context, id int64) error
	ListByForum(ctx context.Context, forumID int64, limit int) ([]*models.Thread, error)
	ListByCreator(ctx context.Context, creatorID int64, limit int) ([]*models.Thread, error)
}

// ReplyRepository defines the interface for reply data access
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	ListByThread(ctx context.Context, threadID int64, limit int) ([]*models.Reply, error)
}

// TournamentRepository defines the interface for tournament data access
type TournamentRepository interface {
	// Create inserts a tournament and fills its id, status and creation time
	Create(ctx context.Context, tournament *models.Tournament) error

	// GetByID retrieves a tournament with its creator name, nil when absent
	GetByID(ctx context.Context, id int64) (*models.Tournament, error)

	// List returns tournaments, optionally filtered by status, newest first
	List(ctx context.Context, status *models.TournamentStatus, limit int) ([]*models.Tournament, error)

	// ListByParticipant returns the tournaments a user has joined
	ListByParticipant(ctx context.Context, userID int64, limit int) ([]*models.Tournament, error)

	// AddParticipant records a participant, false when already joined
	AddParticipant(ctx context.Context, tournamentID, userID int64) (bool, error)

	// RemoveParticipant deletes a participant, false when not joined
	RemoveParticipant(ctx context.Context, tournamentID, userID int64) (bool, error)

	// IsParticipant reports whether the user joined the tournament
	IsParticipant(ctx context.Context, tournamentID, userID int64) (bool, error)

	// ListParticipants returns participants in join order
	ListParticipants(ctx context.Context, tournamentID int64) ([]*models.Participant, error)

	// AdjustTeams changes current_teams and returns the new value
	AdjustTeams(ctx context.Context, id int64, delta int) (int, error)

	// UpdateStatus moves a tournament to a new status and optionally records the winner
	UpdateStatus(ctx context.Context, id int64, status models.TournamentStatus, winnerID *int64) error
}

// BadgeRepository defines the interface for badge data access
type BadgeRepository interface {
	List(ctx context.Context) ([]*models.Badge, error)
	Award(ctx context.Context, userID int64, badgeName string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.UserBadge, error)
}

// FollowRepository defines the interface for user-to-user follows
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID int64) (bool, error)
	Unfollow(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64, limit int) ([]*models.User, error)
	ListFollowers(ctx context.Context, userID int64, limit int) ([]*models.User, error)
}

// PackageRepository defines the interface for paper package data access
type PackageRepository interface {
	List(ctx context.Context) ([]*models.Package, error)
	GetByKey(ctx context.Context, key string) (*models.Package, error)
	UpdatePrice(ctx context.Context, key string, price int64) (bool, error)
}

// PaymentRepository defines the interface for the pending payment queue
type PaymentRepository interface {
	// Upsert stores a user's pending payment, replacing any earlier submission
	Upsert(ctx context.Context, payment *models.PendingPayment) error

	// GetByUser returns a user's pending payment, nil when absent
	GetByUser(ctx context.Context, userID int64) (*models.PendingPayment, error)

	// List returns pending payments, oldest first
	List(ctx context.Context) ([]*models.PendingPayment, error)

	// Count returns the number of pending payments
	Count(ctx context.Context) (int, error)

	// DeleteByUser removes and returns a user's pending payment, nil when absent
	DeleteByUser(ctx context.Context, userID int64) (*models.PendingPayment, error)
}

// AdminRepository defines the interface for the admin set
type AdminRepository interface {
	Exists(ctx context.Context, telegramID int64) (bool, error)
	Add(ctx context.Context, telegramID int64, addedBy int64) (bool, error)
	Remove(ctx context.Context, telegramID int64) (bool, error)
	List(ctx context.Context) ([]*models.Admin, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	ForumRepository() ForumRepository
	ThreadRepository() ThreadRepository
	ReplyRepository() ReplyRepository
	TournamentRepository() TournamentRepository
	BadgeRepository() BadgeRepository
	FollowRepository() FollowRepository
	PackageRepository() PackageRepository
	PaymentRepository() PaymentRepository
	AdminRepository() AdminRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser registers a user on first contact and refreshes their names afterwards
	GetOrCreateUser(ctx context.Context, telegramID int64, username, fullName string) (*models.User, error)

	// GetUser returns a user or ErrNotFound
	GetUser(ctx context.Context, telegramID int64) (*models.User, error)

	// GrantExperience adds experience, recomputes the level and emits level_up on change
	GrantExperience(ctx context.Context, telegramID int64, amount int64) (*models.User, error)

	// GetRankings returns the leaderboard for a criteria, falling back to reputation
	GetRankings(ctx context.Context, criteria models.RankingCriteria, limit int) ([]*models.User, error)

	// FindPlayers returns users the viewer could follow
	FindPlayers(ctx context.Context, viewerID int64, limit int) ([]*models.User, error)

	// GetQuickStats returns community totals
	GetQuickStats(ctx context.Context) (*models.QuickStats, error)

	// GetAllUserIDs returns every known user id, used for broadcasts
	GetAllUserIDs(ctx context.Context) ([]int64, error)
}

// TournamentService defines the interface for tournament operations
type TournamentService interface {
	CreateTournament(ctx context.Context, creatorID int64, name, gameVersion string, maxTeams int, description string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int64) (*models.Tournament, error)
	ListTournaments(ctx context.Context, status *models.TournamentStatus, limit int) ([]*models.Tournament, error)
	ListUserTournaments(ctx context.Context, userID int64, limit int) ([]*models.Tournament, error)
	GetParticipants(ctx context.Context, id int64) ([]*models.Participant, error)

	// JoinTournament registers a user once per tournament and grants the join reward
	JoinTournament(ctx context.Context, id, userID int64) (*models.Tournament, error)

	// LeaveTournament reverses a join while registration is open
	LeaveTournament(ctx context.Context, id, userID int64) (*models.Tournament, error)

	// StartTournament moves a pending tournament to active
	StartTournament(ctx context.Context, id int64) (*models.Tournament, error)

	// CompleteTournament records the winner of an active tournament and rewards them
	CompleteTournament(ctx context.Context, id, winnerID int64) (*models.Tournament, error)
}

// ForumService defines the interface for forums, threads and replies
type ForumService interface {
	ListForums(ctx context.Context, featuredOnly bool) ([]*models.Forum, error)
	GetForum(ctx context.Context, id int64) (*models.Forum, error)
	CreateForum(ctx context.Context, name, category, description string) (*models.Forum, error)
	FollowForum(ctx context.Context, userID, forumID int64) error
	UnfollowForum(ctx context.Context, userID, forumID int64) error
	GetFollowedForumIDs(ctx context.Context, userID int64) ([]int64, error)
	ListFollowedForums(ctx context.Context, userID int64) ([]*models.Forum, error)

	ListThreads(ctx context.Context, forumID int64, limit int) ([]*models.Thread, error)
	ListUserThreads(ctx context.Context, userID int64, limit int) ([]*models.Thread, error)
	CreateThread(ctx context.Context, creatorID, forumID int64, title, content string) (*models.Thread, error)

	// ViewThread returns a thread and counts the view
	ViewThread(ctx context.Context, id int64) (*models.Thread, error)
	GetThread(ctx context.Context, id int64) (*models.Thread, error)

	ListReplies(ctx context.Context, threadID int64, limit int) ([]*models.Reply, error)
	CreateReply(ctx context.Context, userID, threadID int64, content string) (*models.Reply, error)
}

// SocialService defines the interface for user follows
type SocialService interface {
	FollowUser(ctx context.Context, followerID, followedID int64) error
	UnfollowUser(ctx context.Context, followerID, followedID int64) error
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64, limit int) ([]*models.User, error)
	ListFollowers(ctx context.Context, userID int64, limit int) ([]*models.User, error)
}

// BadgeService defines the interface for badges
type BadgeService interface {
	ListBadges(ctx context.Context) ([]*models.Badge, error)
	ListUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error)

	// AwardBadge grants a badge once, returning false when the user already had it
	AwardBadge(ctx context.Context, userID int64, badgeName string) (bool, error)
}

// PaymentService defines the interface for paper packages and payment review
type PaymentService interface {
	ListPackages(ctx context.Context) ([]*models.Package, error)
	GetPackage(ctx context.Context, key string) (*models.Package, error)
	SetPrice(ctx context.Context, key string, price int64) (*models.Package, error)

	// BookPackage remembers the package the user intends to pay for
	BookPackage(ctx context.Context, userID int64, key string) (*models.Package, error)

	// SubmitPayment queues a payment code for the user's booked package
	SubmitPayment(ctx context.Context, userID int64, name, code string) (*models.PendingPayment, error)

	ListPending(ctx context.Context) ([]*models.PendingPayment, error)
	CountPending(ctx context.Context) (int, error)

	// ApprovePayment removes the pending entry and marks the user as paid
	ApprovePayment(ctx context.Context, adminID, userID int64) (*models.PendingPayment, error)

	// RejectPayment removes the pending entry without touching the paid flag
	RejectPayment(ctx context.Context, adminID, userID int64) (*models.PendingPayment, error)
}

// AdminService defines the interface for admin membership
type AdminService interface {
	IsAdmin(ctx context.Context, telegramID int64) (bool, error)
	IsSuperAdmin(telegramID int64) bool
	AddAdmin(ctx context.Context, actorID, telegramID int64) error
	RemoveAdmin(ctx context.Context, actorID, telegramID int64) error

	// ListAdminIDs returns every admin including the main admin
	ListAdminIDs(ctx context.Context) ([]int64, error)

	// SeedAdmins adds configured admins on startup, returning how many were new
	SeedAdmins(ctx context.Context, telegramIDs []int64) (int, error)
}
