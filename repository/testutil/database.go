package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"clubhouse/database"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const templateDatabase = "clubhouse_template"

// TestDatabase is a freshly migrated database owned by one test
type TestDatabase struct {
	DB   *database.DB
	URL  string
	Name string
}

// server is the postgres container shared by every test in the package run.
// The reaper removes it when the test binary exits.
var server struct {
	once    sync.Once
	baseURL string
	err     error
	seq     atomic.Int64
}

func startServer() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(templateDatabase),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":    "clubhouse-repository",
			"started": time.Now().Format("20060102-150405"),
		}),
	)
	if err != nil {
		server.err = fmt.Errorf("failed to start postgres container: %w", err)
		return
	}

	templateURL, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		server.err = err
		return
	}

	// Every test database is cloned from the migrated template
	if err := database.RunMigrationsWithURL(templateURL); err != nil {
		server.err = fmt.Errorf("failed to migrate template: %w", err)
		return
	}
	server.baseURL = templateURL
}

// SetupTestDatabase returns a migrated database cloned from the shared
// template. It is dropped when the test ends.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	server.once.Do(startServer)
	require.NoError(t, server.err)

	ctx := context.Background()
	name := fmt.Sprintf("clubhouse_test_%d", server.seq.Add(1))

	admin := adminConn(t, ctx)
	_, err := admin.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s TEMPLATE %s", name, templateDatabase))
	require.NoError(t, admin.Close(ctx))
	require.NoError(t, err)

	url := database.ConstructDatabaseURL(server.baseURL, name)
	db, err := database.NewConnection(ctx, url)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		admin := adminConn(t, ctx)
		defer admin.Close(ctx)
		if _, err := admin.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", name)); err != nil {
			t.Logf("Warning: failed to drop %s: %v", name, err)
		}
	})

	return &TestDatabase{DB: db, URL: url, Name: name}
}

// adminConn connects to the maintenance database, which is never used as a
// template so cloning is not blocked by open sessions
func adminConn(t *testing.T, ctx context.Context) *pgx.Conn {
	t.Helper()
	conn, err := pgx.Connect(ctx, database.ConstructDatabaseURL(server.baseURL, "postgres"))
	require.NoError(t, err)
	return conn
}
