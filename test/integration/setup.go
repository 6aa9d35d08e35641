package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/hotornot/internal/core/ports"
	"github.com/vncsmyrnk/hotornot/internal/storage"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupMongoContainer(ctx context.Context) (testcontainers.Container, string, error) {
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, "", fmt.Errorf("failed to start mongo container: %w", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		return nil, "", err
	}

	return mongoContainer, uri, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type backend struct {
	name string
	open func(t *testing.T) ports.CarRepository
}

func postgresBackend(t *testing.T) ports.CarRepository {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { testcontainers.TerminateContainer(container) })

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))
	require.NoError(t, db.Close())

	repo, closeRepo, err := storage.OpenPostgres(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { closeRepo(context.Background()) })
	return repo
}

func mongoBackend(t *testing.T) ports.CarRepository {
	t.Helper()
	ctx := context.Background()

	container, uri, err := setupMongoContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { testcontainers.TerminateContainer(container) })

	repo, closeRepo, err := storage.OpenMongo(ctx, uri, "hotornot_test")
	require.NoError(t, err)
	t.Cleanup(func() { closeRepo(context.Background()) })
	return repo
}

var backends = []backend{
	{name: "postgres", open: postgresBackend},
	{name: "mongo", open: mongoBackend},
}
