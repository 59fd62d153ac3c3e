// AngelaMos | 2026
// postgres.go

package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carterperez-dev/insight-dashboard/internal/config"
	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

const postgresImage = "postgres:16-alpine"

var (
	sharedDB     *core.Database
	sharedDBOnce sync.Once
	sharedDBErr  error
)

// GetTestDB returns a migrated Postgres database shared by every test in
// the run. It skips the test under -short since it needs Docker.
func GetTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB()
	})

	if sharedDBErr != nil {
		t.Fatalf("setup test database: %v", sharedDBErr)
	}

	return sharedDB.DB
}

// Truncate empties the given tables and resets their id sequences.
func Truncate(t *testing.T, db *sqlx.DB, tables ...string) {
	t.Helper()

	for _, table := range tables {
		query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}

func setupTestDB() (*core.Database, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "insight_test",
			"POSTGRES_USER":     "insight",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("container port: %w", err)
	}

	db, err := core.OpenDatabase(ctx, config.DatabaseConfig{
		Driver:      config.DriverPostgres,
		AutoMigrate: true,
		URL: fmt.Sprintf(
			"postgres://insight:test_password@%s:%s/insight_test?sslmode=disable",
			host,
			port.Port(),
		),
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
