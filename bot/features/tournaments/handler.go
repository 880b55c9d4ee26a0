package tournaments

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/bot/cards"
	"clubhouse/bot/common"
	"clubhouse/flow"
	"clubhouse/models"
	"clubhouse/service"
)

func (f *Feature) Menu(ctx context.Context) (cards.Card, error) {
	pending := models.TournamentStatusPending
	tournaments, err := f.tournamentService.ListTournaments(ctx, &pending, menuLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list tournaments", err)
	}

	stats, err := f.userService.GetQuickStats(ctx)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load community stats", err)
	}

	return cards.TournamentsMenu(tournaments, stats), nil
}

func (f *Feature) Create(ctx context.Context, userID int64) (cards.Card, error) {
	return common.StartFlow(ctx, f.flows, userID, flow.KindTournament, nil)
}

func (f *Feature) Mine(ctx context.Context, userID int64) (cards.Card, error) {
	tournaments, err := f.tournamentService.ListUserTournaments(ctx, userID, myLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list user tournaments", err)
	}
	return cards.MyTournaments(tournaments), nil
}

func (f *Feature) Leaderboard(ctx context.Context) (cards.Card, error) {
	users, err := f.userService.GetRankings(ctx, models.RankByTournamentsJoined, leaderboardLimit)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to load tournament rankings", err)
	}
	return cards.TournamentLeaderboard(users), nil
}

func (f *Feature) View(ctx context.Context, userID, tournamentID int64) (cards.Card, error) {
	tournament, err := f.tournamentService.GetTournament(ctx, tournamentID)
	if err != nil {
		return cards.Card{}, mapError(err)
	}

	participants, err := f.tournamentService.GetParticipants(ctx, tournamentID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list participants", err)
	}

	joined := false
	for _, p := range participants {
		if p.UserID == userID {
			joined = true
			break
		}
	}

	return cards.TournamentCard(tournament, participants, joined), nil
}

func (f *Feature) Join(ctx context.Context, userID, tournamentID int64) (cards.Card, error) {
	if _, err := f.tournamentService.JoinTournament(ctx, tournamentID, userID); err != nil {
		return cards.Card{}, mapError(err)
	}

	return cards.Success(
		"Tournament Joined!",
		"You've successfully joined the tournament!",
		fmt.Sprintf("%s%d", cards.PrefixTournamentView, tournamentID),
	), nil
}

func (f *Feature) Leave(ctx context.Context, userID, tournamentID int64) (cards.Card, error) {
	if _, err := f.tournamentService.LeaveTournament(ctx, tournamentID, userID); err != nil {
		return cards.Card{}, mapError(err)
	}

	return cards.Success(
		"Tournament Left",
		"You've left the tournament.",
		fmt.Sprintf("%s%d", cards.PrefixTournamentView, tournamentID),
	), nil
}

func (f *Feature) Participants(ctx context.Context, tournamentID int64) (cards.Card, error) {
	tournament, err := f.tournamentService.GetTournament(ctx, tournamentID)
	if err != nil {
		return cards.Card{}, mapError(err)
	}

	participants, err := f.tournamentService.GetParticipants(ctx, tournamentID)
	if err != nil {
		return cards.Card{}, common.InternalError("failed to list participants", err)
	}

	return cards.Participants(tournament, participants), nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return common.UserError("Tournament not found", err)
	case errors.Is(err, service.ErrAlreadyJoined):
		return common.UserError("You have already joined this tournament.", err)
	case errors.Is(err, service.ErrTournamentFull):
		return common.UserError("This tournament is full.", err)
	case errors.Is(err, service.ErrTournamentClosed):
		return common.UserError("Registration for this tournament is closed.", err)
	case errors.Is(err, service.ErrNotParticipant):
		return common.UserError("You are not registered in this tournament.", err)
	}
	return common.InternalError("tournament operation failed", err)
}
