package repository

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database"
	"clubhouse/events"
	"clubhouse/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	forumRepo        service.ForumRepository
	threadRepo       service.ThreadRepository
	replyRepo        service.ReplyRepository
	tournamentRepo   service.TournamentRepository
	badgeRepo        service.BadgeRepository
	followRepo       service.FollowRepository
	packageRepo      service.PackageRepository
	paymentRepo      service.PaymentRepository
	adminRepo        service.AdminRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.forumRepo = newForumRepositoryWithTx(tx)
	u.threadRepo = newThreadRepositoryWithTx(tx)
	u.replyRepo = newReplyRepositoryWithTx(tx)
	u.tournamentRepo = newTournamentRepositoryWithTx(tx)
	u.badgeRepo = newBadgeRepositoryWithTx(tx)
	u.followRepo = newFollowRepositoryWithTx(tx)
	u.packageRepo = newPackageRepositoryWithTx(tx)
	u.paymentRepo = newPaymentRepositoryWithTx(tx)
	u.adminRepo = newAdminRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func notStarted() {
	panic("unit of work not started - call Begin() first")
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		notStarted()
	}
	return u.userRepo
}

// ForumRepository returns the forum repository for this unit of work
func (u *unitOfWork) ForumRepository() service.ForumRepository {
	if u.forumRepo == nil {
		notStarted()
	}
	return u.forumRepo
}

// ThreadRepository returns the thread repository for this unit of work
func (u *unitOfWork) ThreadRepository() service.ThreadRepository {
	if u.threadRepo == nil {
		notStarted()
	}
	return u.threadRepo
}

// ReplyRepository returns the reply repository for this unit of work
func (u *unitOfWork) ReplyRepository() service.ReplyRepository {
	if u.replyRepo == nil {
		notStarted()
	}
	return u.replyRepo
}

// TournamentRepository returns the tournament repository for this unit of work
func (u *unitOfWork) TournamentRepository() service.TournamentRepository {
	if u.tournamentRepo == nil {
		notStarted()
	}
	return u.tournamentRepo
}

// BadgeRepository returns the badge repository for this unit of work
func (u *unitOfWork) BadgeRepository() service.BadgeRepository {
	if u.badgeRepo == nil {
		notStarted()
	}
	return u.badgeRepo
}

// FollowRepository returns the follow repository for this unit of work
func (u *unitOfWork) FollowRepository() service.FollowRepository {
	if u.followRepo == nil {
		notStarted()
	}
	return u.followRepo
}

// PackageRepository returns the package repository for this unit of work
func (u *unitOfWork) PackageRepository() service.PackageRepository {
	if u.packageRepo == nil {
		notStarted()
	}
	return u.packageRepo
}

// PaymentRepository returns the payment repository for this unit of work
func (u *unitOfWork) PaymentRepository() service.PaymentRepository {
	if u.paymentRepo == nil {
		notStarted()
	}
	return u.paymentRepo
}

// AdminRepository returns the admin repository for this unit of work
func (u *unitOfWork) AdminRepository() service.AdminRepository {
	if u.adminRepo == nil {
		notStarted()
	}
	return u.adminRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		notStarted()
	}
	return u.transactionalBus
}
