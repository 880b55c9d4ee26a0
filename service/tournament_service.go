package service

import (
	"context"
	"fmt"
	"strings"

	"clubhouse/events"
	"clubhouse/models"

	log "github.com/sirupsen/logrus"
)

// tournamentService implements the TournamentService interface
type tournamentService struct {
	uowFactory UnitOfWorkFactory
}

// NewTournamentService creates a new tournament service
func NewTournamentService(uowFactory UnitOfWorkFactory) TournamentService {
	return &tournamentService{
		uowFactory: uowFactory,
	}
}

// CreateTournament stores a new pending tournament
func (s *tournamentService) CreateTournament(ctx context.Context, creatorID int64, name, gameVersion string, maxTeams int, description string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContent
	}
	if maxTeams < models.MinTournamentTeams || maxTeams > models.MaxTournamentTeams {
		return nil, fmt.Errorf("%d teams: %w", maxTeams, ErrInvalidTeamCount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament := &models.Tournament{
		Name:        name,
		GameVersion: strings.TrimSpace(gameVersion),
		MaxTeams:    maxTeams,
		Description: strings.TrimSpace(description),
		CreatorID:   creatorID,
		PrizePool:   models.DefaultPrizePool,
	}

	if err := uow.TournamentRepository().Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	uow.EventBus().Publish(events.TournamentCreatedEvent{
		TournamentID: tournament.ID,
		CreatorID:    creatorID,
		Name:         tournament.Name,
		MaxTeams:     tournament.MaxTeams,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"tournamentID": tournament.ID,
		"creatorID":    creatorID,
		"maxTeams":     maxTeams,
	}).Info("Tournament created")

	return tournament, nil
}

// GetTournament returns a tournament or ErrNotFound
func (s *tournamentService) GetTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return getTournament(ctx, uow, id)
}

func getTournament(ctx context.Context, uow UnitOfWork, id int64) (*models.Tournament, error) {
	tournament, err := uow.TournamentRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	if tournament == nil {
		return nil, fmt.Errorf("tournament %d: %w", id, ErrNotFound)
	}
	return tournament, nil
}

// ListTournaments returns tournaments, optionally filtered by status
func (s *tournamentService) ListTournaments(ctx context.Context, status *models.TournamentStatus, limit int) ([]*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournaments, err := uow.TournamentRepository().List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	return tournaments, nil
}

// ListUserTournaments returns the tournaments a user joined
func (s *tournamentService) ListUserTournaments(ctx context.Context, userID int64, limit int) ([]*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournaments, err := uow.TournamentRepository().ListByParticipant(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tournaments: %w", err)
	}

	return tournaments, nil
}

// GetParticipants returns the participants of an existing tournament
func (s *tournamentService) GetParticipants(ctx context.Context, id int64) ([]*models.Participant, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getTournament(ctx, uow, id); err != nil {
		return nil, err
	}

	participants, err := uow.TournamentRepository().ListParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return participants, nil
}

// JoinTournament registers the user, bumps both counters and grants the join reward
// in a single transaction
func (s *tournamentService) JoinTournament(ctx context.Context, id, userID int64) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := getTournament(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusPending {
		return nil, ErrTournamentClosed
	}
	if tournament.IsFull() {
		return nil, ErrTournamentFull
	}

	added, err := uow.TournamentRepository().AddParticipant(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}
	if !added {
		return nil, ErrAlreadyJoined
	}

	teams, err := uow.TournamentRepository().AdjustTeams(ctx, id, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to update team count: %w", err)
	}
	// A concurrent join may have taken the last slot
	if teams > tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	if _, err := uow.UserRepository().IncrementCounter(ctx, userID, models.CounterTournamentsJoined, 1); err != nil {
		return nil, fmt.Errorf("failed to update tournaments joined: %w", err)
	}

	if _, _, err := grantExperience(ctx, uow, userID, models.XPTournamentJoined); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TournamentJoinedEvent{
		TournamentID: id,
		UserID:       userID,
		CurrentTeams: teams,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	tournament.CurrentTeams = teams
	return tournament, nil
}

// LeaveTournament reverses a join while registration is still open
func (s *tournamentService) LeaveTournament(ctx context.Context, id, userID int64) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := getTournament(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusPending {
		return nil, ErrTournamentClosed
	}

	removed, err := uow.TournamentRepository().RemoveParticipant(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove participant: %w", err)
	}
	if !removed {
		return nil, ErrNotParticipant
	}

	teams, err := uow.TournamentRepository().AdjustTeams(ctx, id, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to update team count: %w", err)
	}

	if _, err := uow.UserRepository().IncrementCounter(ctx, userID, models.CounterTournamentsJoined, -1); err != nil {
		return nil, fmt.Errorf("failed to update tournaments joined: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	tournament.CurrentTeams = teams
	return tournament, nil
}

// StartTournament closes registration and moves the tournament to active
func (s *tournamentService) StartTournament(ctx context.Context, id int64) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := getTournament(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusPending {
		return nil, fmt.Errorf("cannot start %s tournament: %w", tournament.Status, ErrInvalidTransition)
	}

	if err := uow.TournamentRepository().UpdateStatus(ctx, id, models.TournamentStatusActive, nil); err != nil {
		return nil, fmt.Errorf("failed to start tournament: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	tournament.Status = models.TournamentStatusActive
	return tournament, nil
}

// CompleteTournament records the winner and grants the winner reward
func (s *tournamentService) CompleteTournament(ctx context.Context, id, winnerID int64) (*models.Tournament, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tournament, err := getTournament(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusActive {
		return nil, fmt.Errorf("cannot complete %s tournament: %w", tournament.Status, ErrInvalidTransition)
	}

	joined, err := uow.TournamentRepository().IsParticipant(ctx, id, winnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check winner: %w", err)
	}
	if !joined {
		return nil, ErrNotParticipant
	}

	if err := uow.TournamentRepository().UpdateStatus(ctx, id, models.TournamentStatusCompleted, &winnerID); err != nil {
		return nil, fmt.Errorf("failed to complete tournament: %w", err)
	}

	if _, _, err := grantExperience(ctx, uow, winnerID, models.XPTournamentWon); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.TournamentCompletedEvent{
		TournamentID: id,
		WinnerID:     winnerID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	tournament.Status = models.TournamentStatusCompleted
	tournament.WinnerID = &winnerID
	return tournament, nil
}
