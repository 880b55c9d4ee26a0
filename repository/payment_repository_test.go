package repository

import (
	"context"
	"testing"

	"clubhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository_PendingQueue(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	users := NewUserRepository(testDB.DB)
	repo := NewPaymentRepository(testDB.DB)
	ctx := context.Background()

	_, err := users.Create(ctx, 500, "student", "")
	require.NoError(t, err)

	t.Run("resubmission replaces the entry", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPayment(500, "QJD7H4XYZ1")))
		require.NoError(t, repo.Upsert(ctx, testutil.CreateTestPayment(500, "QJD7H4XYZ2")))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		payment, err := repo.GetByUser(ctx, 500)
		require.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, "QJD7H4XYZ2", payment.Code)
	})

	t.Run("delete removes exactly once", func(t *testing.T) {
		removed, err := repo.DeleteByUser(ctx, 500)
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, int64(2000), removed.Price)

		removed, err = repo.DeleteByUser(ctx, 500)
		require.NoError(t, err)
		assert.Nil(t, removed)

		payments, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestPackageRepository_Prices(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPackageRepository(testDB.DB)
	ctx := context.Background()

	packages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, packages, 5)
	assert.Equal(t, "single", packages[0].Key)
	assert.Equal(t, int64(2000), packages[0].Price)

	updated, err := repo.UpdatePrice(ctx, "school", 25000)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.UpdatePrice(ctx, "unknown", 1)
	require.NoError(t, err)
	assert.False(t, updated)

	pkg, err := repo.GetByKey(ctx, "school")
	require.NoError(t, err)
	require.NotNil(t, pkg)
	assert.Equal(t, int64(25000), pkg.Price)
}
