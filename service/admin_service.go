package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// adminService implements the AdminService interface
type adminService struct {
	uowFactory   UnitOfWorkFactory
	superAdminID int64
}

// NewAdminService creates a new admin service. The super admin is always an
// admin and is the only one allowed to change the admin set.
func NewAdminService(uowFactory UnitOfWorkFactory, superAdminID int64) AdminService {
	return &adminService{
		uowFactory:   uowFactory,
		superAdminID: superAdminID,
	}
}

func (s *adminService) IsSuperAdmin(telegramID int64) bool {
	return telegramID == s.superAdminID
}

func (s *adminService) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	if s.IsSuperAdmin(telegramID) {
		return true, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	exists, err := uow.AdminRepository().Exists(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}

	return exists, nil
}

func (s *adminService) AddAdmin(ctx context.Context, actorID, telegramID int64) error {
	if !s.IsSuperAdmin(actorID) {
		return ErrNotSuperAdmin
	}
	if s.IsSuperAdmin(telegramID) {
		return ErrAlreadyAdmin
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	added, err := uow.AdminRepository().Add(ctx, telegramID, actorID)
	if err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}
	if !added {
		return ErrAlreadyAdmin
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"adminID": telegramID,
		"addedBy": actorID,
	}).Info("Admin added")

	return nil
}

func (s *adminService) RemoveAdmin(ctx context.Context, actorID, telegramID int64) error {
	if !s.IsSuperAdmin(actorID) {
		return ErrNotSuperAdmin
	}
	if s.IsSuperAdmin(telegramID) {
		return ErrProtectedAdmin
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	removed, err := uow.AdminRepository().Remove(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("failed to remove admin: %w", err)
	}
	if !removed {
		return fmt.Errorf("admin %d: %w", telegramID, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"adminID":   telegramID,
		"removedBy": actorID,
	}).Info("Admin removed")

	return nil
}

func (s *adminService) ListAdminIDs(ctx context.Context) ([]int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	admins, err := uow.AdminRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	ids := []int64{s.superAdminID}
	for _, admin := range admins {
		if admin.TelegramID != s.superAdminID {
			ids = append(ids, admin.TelegramID)
		}
	}

	return ids, nil
}

func (s *adminService) SeedAdmins(ctx context.Context, telegramIDs []int64) (int, error) {
	if len(telegramIDs) == 0 {
		return 0, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	added := 0
	for _, id := range telegramIDs {
		if s.IsSuperAdmin(id) {
			continue
		}
		ok, err := uow.AdminRepository().Add(ctx, id, s.superAdminID)
		if err != nil {
			return 0, fmt.Errorf("failed to seed admin %d: %w", id, err)
		}
		if ok {
			added++
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("added", added).Info("Seeded configured admins")
	return added, nil
}
