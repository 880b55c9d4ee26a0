package service

import (
	"context"
	"fmt"

	"clubhouse/events"
	"clubhouse/models"
)

// grantExperience adds experience inside the caller's unit of work and keeps the
// stored level in step with it. A level_up event is published when the level changes.
// This is the single entry point for all experience changes in the system.
func grantExperience(ctx context.Context, uow UnitOfWork, telegramID int64, amount int64) (int64, int, error) {
	experience, oldLevel, err := uow.UserRepository().AddExperience(ctx, telegramID, amount)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to add experience: %w", err)
	}

	newLevel := models.LevelForExperience(experience)
	if newLevel == oldLevel {
		return experience, oldLevel, nil
	}

	if err := uow.UserRepository().SetLevel(ctx, telegramID, newLevel); err != nil {
		return 0, 0, fmt.Errorf("failed to update level: %w", err)
	}

	uow.EventBus().Publish(events.LevelUpEvent{
		UserID:     telegramID,
		OldLevel:   oldLevel,
		NewLevel:   newLevel,
		Experience: experience,
	})

	return experience, newLevel, nil
}
