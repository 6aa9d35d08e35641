package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/hotornot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
	"github.com/vncsmyrnk/hotornot/internal/core/services"
)

// failingRepo wraps a real repository and fails the configured operations.
type failingRepo struct {
	ports.CarRepository
	countErr  error
	insertErr error
	inserts   int
}

func (r *failingRepo) Count(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.CarRepository.Count(ctx)
}

func (r *failingRepo) InsertMany(ctx context.Context, cars []*domain.Car) error {
	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	return r.CarRepository.InsertMany(ctx, cars)
}

func TestSeedEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCarRepository()
	svc := services.NewSeedService(repo, domain.Catalog())

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Len(t, result.Inserted, 10)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)

	seen := make(map[string]int)
	for _, car := range result.Inserted {
		stored, err := repo.GetByID(ctx, car.ID)
		require.NoError(t, err)
		seen[fmt.Sprintf("%s|%s|%d", stored.Make, stored.Model, stored.Year)]++
	}
	for _, entry := range domain.Catalog() {
		assert.Equal(t, 1, seen[fmt.Sprintf("%s|%s|%d", entry.Make, entry.Model, entry.Year)], entry.String())
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{CarRepository: memory.NewCarRepository()}
	svc := services.NewSeedService(repo, domain.Catalog())

	_, err := svc.Seed(ctx)
	require.NoError(t, err)

	result, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.EqualValues(t, 10, result.Existing)
	assert.Empty(t, result.Inserted)
	assert.Equal(t, 1, repo.inserts)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{CarRepository: memory.NewCarRepository()}

	car, err := domain.NewCar(domain.CatalogEntry{Make: "Fiat", Model: "Uno", Year: 1995, ImageURL: "https://example.com/uno.jpg"})
	require.NoError(t, err)
	require.NoError(t, repo.CarRepository.InsertMany(ctx, []*domain.Car{car}))

	result, err := services.NewSeedService(repo, domain.Catalog()).Seed(ctx)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.EqualValues(t, 1, result.Existing)
	assert.Zero(t, repo.inserts)
}

func TestSeedPropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	repo := &failingRepo{CarRepository: memory.NewCarRepository(), countErr: boom}
	_, err := services.NewSeedService(repo, domain.Catalog()).Seed(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, repo.inserts)

	repo = &failingRepo{CarRepository: memory.NewCarRepository(), insertErr: boom}
	_, err = services.NewSeedService(repo, domain.Catalog()).Seed(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to insert cars")
}

func TestSeedRejectsInvalidCatalogBeforeWriting(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepo{CarRepository: memory.NewCarRepository()}
	catalog := append(domain.Catalog(), domain.CatalogEntry{Make: "Ghost", Year: 2020, ImageURL: "https://example.com/x.jpg"})

	_, err := services.NewSeedService(repo, catalog).Seed(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidCatalogEntry)
	assert.Zero(t, repo.inserts)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
