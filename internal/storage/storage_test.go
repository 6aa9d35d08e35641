package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/hotornot/internal/config"
)

func TestOpenMemory(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := Open(ctx, &config.Config{StorageDriver: config.DriverMemory})
	require.NoError(t, err)
	defer closeFn(ctx)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageDriver: "sqlite"})
	assert.ErrorContains(t, err, "unknown storage driver")
}
