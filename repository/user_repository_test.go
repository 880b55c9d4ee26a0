package repository

import (
	"context"
	"testing"

	"clubhouse/models"
	"clubhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		user, err := repo.GetByTelegramID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("created with defaults and stats row", func(t *testing.T) {
		user, err := repo.Create(ctx, 1001, "striker", "Sam Striker")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(1001), user.TelegramID)
		assert.Equal(t, "striker", user.Username)
		assert.Equal(t, models.RoleMember, user.Role)
		assert.Equal(t, 1, user.Level)
		assert.Equal(t, int64(0), user.Experience)
		assert.False(t, user.Paid)
		assert.Nil(t, user.Package)
		assert.Equal(t, 0, user.Stats.PostCount)
	})

	t.Run("profile refresh", func(t *testing.T) {
		require.NoError(t, repo.UpdateProfile(ctx, 1001, "striker9", "Sam S"))

		user, err := repo.GetByTelegramID(ctx, 1001)
		require.NoError(t, err)
		assert.Equal(t, "striker9", user.Username)
		assert.Equal(t, "Sam S", user.FullName)
	})
}

func TestUserRepository_Counters(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 2001, "keeper", "")
	require.NoError(t, err)

	experience, level, err := repo.AddExperience(ctx, 2001, 120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), experience)
	assert.Equal(t, 1, level)

	require.NoError(t, repo.SetLevel(ctx, 2001, models.LevelForExperience(experience)))

	threads, err := repo.IncrementCounter(ctx, 2001, models.CounterThreadsCreated, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, threads)

	joined, err := repo.IncrementCounter(ctx, 2001, models.CounterTournamentsJoined, -1)
	require.NoError(t, err)
	assert.Equal(t, 0, joined, "counters never go negative")

	posts, err := repo.IncrementStat(ctx, 2001, models.StatsPostCount, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, posts)

	_, err = repo.IncrementCounter(ctx, 2001, models.UserCounter("balance"), 1)
	assert.Error(t, err)

	user, err := repo.GetByTelegramID(ctx, 2001)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, 1, user.ThreadsCreated)
	assert.Equal(t, 2, user.Stats.PostCount)
}

func TestUserRepository_RankingsAndDiscovery(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	follows := NewFollowRepository(testDB.DB)
	ctx := context.Background()

	for i, name := range []string{"alpha", "bravo", "charlie"} {
		id := int64(3001 + i)
		_, err := repo.Create(ctx, id, name, "")
		require.NoError(t, err)
		_, err = repo.IncrementCounter(ctx, id, models.CounterReputation, (i+1)*10)
		require.NoError(t, err)
	}

	rankings, err := repo.GetRankings(ctx, models.RankingCriteria("nonsense"), 10)
	require.NoError(t, err)
	require.Len(t, rankings, 3)
	assert.Equal(t, "charlie", rankings[0].Username)
	assert.Equal(t, "alpha", rankings[2].Username)

	_, err = follows.Follow(ctx, 3001, 3003)
	require.NoError(t, err)

	discoverable, err := repo.ListDiscoverable(ctx, 3001, 10)
	require.NoError(t, err)
	require.Len(t, discoverable, 1)
	assert.Equal(t, int64(3002), discoverable[0].TelegramID)

	ids, err := repo.GetAllIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3001, 3002, 3003}, ids)

	stats, err := repo.GetQuickStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 0, stats.ActiveTournaments)
}
