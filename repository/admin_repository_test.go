package repository

import (
	"context"
	"testing"

	"clubhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAdminRepository(testDB.DB)
	ctx := context.Background()

	added, err := repo.Add(ctx, 42, 6501240419)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(ctx, 42, 6501240419)
	require.NoError(t, err)
	assert.False(t, added)

	exists, err := repo.Exists(ctx, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	admins, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.NotNil(t, admins[0].AddedBy)

	removed, err := repo.Remove(ctx, 42)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDB_SeedAdmins(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, testDB.DB.SeedAdmins(ctx, []int64{1, 2, 2}))

	admins, err := NewAdminRepository(testDB.DB).List(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}
