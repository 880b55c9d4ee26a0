package repository

import (
	"context"
	"testing"

	"clubhouse/models"
	"clubhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentRepository_Participants(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewTournamentRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 10, "host", "")
	require.NoError(t, err)
	_, err = users.Create(ctx, 11, "player", "")
	require.NoError(t, err)

	tournament := testutil.CreateTestTournament(10, "Weekend Cup")
	require.NoError(t, repo.Create(ctx, tournament))
	assert.NotZero(t, tournament.ID)
	assert.Equal(t, models.TournamentStatusPending, tournament.Status)
	assert.Equal(t, "Glory", tournament.PrizePool)

	t.Run("join once", func(t *testing.T) {
		added, err := repo.AddParticipant(ctx, tournament.ID, 11)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = repo.AddParticipant(ctx, tournament.ID, 11)
		require.NoError(t, err)
		assert.False(t, added, "second join must be a no-op")

		participants, err := repo.ListParticipants(ctx, tournament.ID)
		require.NoError(t, err)
		require.Len(t, participants, 1)
		assert.Equal(t, "player", participants[0].Username)
	})

	t.Run("membership and listing", func(t *testing.T) {
		joined, err := repo.IsParticipant(ctx, tournament.ID, 11)
		require.NoError(t, err)
		assert.True(t, joined)

		mine, err := repo.ListByParticipant(ctx, 11, 10)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "host", mine[0].CreatorName)
	})

	t.Run("leave", func(t *testing.T) {
		removed, err := repo.RemoveParticipant(ctx, tournament.ID, 11)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.RemoveParticipant(ctx, tournament.ID, 11)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestTournamentRepository_StatusAndTeams(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewTournamentRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 20, "host", "")
	require.NoError(t, err)

	tournament := testutil.CreateTestTournamentWithCap(20, "Derby", 2)
	require.NoError(t, repo.Create(ctx, tournament))

	teams, err := repo.AdjustTeams(ctx, tournament.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, teams)

	teams, err = repo.AdjustTeams(ctx, tournament.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, teams)

	require.NoError(t, repo.UpdateStatus(ctx, tournament.ID, models.TournamentStatusActive, nil))

	active := models.TournamentStatusActive
	list, err := repo.List(ctx, &active, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	winner := int64(20)
	require.NoError(t, repo.UpdateStatus(ctx, tournament.ID, models.TournamentStatusCompleted, &winner))

	got, err := repo.GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.TournamentStatusCompleted, got.Status)
	require.NotNil(t, got.WinnerID)
	assert.Equal(t, winner, *got.WinnerID)

	missing, err := repo.GetByID(ctx, tournament.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, repo.UpdateStatus(ctx, tournament.ID+100, models.TournamentStatusActive, nil))
}
