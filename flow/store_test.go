package flow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	state := &State{Kind: KindThread, Step: 1, Fields: map[string]string{FieldTitle: "a"}}
	require.NoError(t, store.Save(ctx, 1, state))

	state.Fields[FieldTitle] = "mutated"
	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Fields[FieldTitle])

	got.Fields[FieldTitle] = "mutated again"
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Fields[FieldTitle])

	require.NoError(t, store.Delete(ctx, 1))
	missing, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestState_Expired(t *testing.T) {
	now := time.Now()
	state := &State{UpdatedAt: now.Add(-5 * time.Minute)}

	assert.False(t, state.Expired(now, 10*time.Minute))
	assert.True(t, state.Expired(now, 2*time.Minute))
	assert.False(t, state.Expired(now, 0))
}

func setupRedis(t *testing.T) string {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "redis")
	require.NoError(t, err)
	return endpoint
}

func TestRedisStore(t *testing.T) {
	url := setupRedis(t)
	ctx := context.Background()

	store, err := NewRedisStore(ctx, url, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	missing, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved := &State{
		Kind:      KindTournament,
		Step:      2,
		Fields:    map[string]string{FieldName: "Cup", FieldGame: "FIFA 14"},
		UpdatedAt: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, 10, saved))

	got, err := store.Get(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.Kind, got.Kind)
	assert.Equal(t, saved.Step, got.Step)
	assert.Equal(t, saved.Fields, got.Fields)
	assert.True(t, saved.UpdatedAt.Equal(got.UpdatedAt))

	ttl, err := store.rdb.TTL(ctx, redisKey(10)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, 10))
	gone, err := store.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
