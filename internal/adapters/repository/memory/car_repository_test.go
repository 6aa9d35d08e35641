package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
)

func seed(t *testing.T) (*carRepository, []*domain.Car) {
	t.Helper()
	repo := NewCarRepository().(*carRepository)

	var cars []*domain.Car
	for _, entry := range domain.Catalog() {
		car, err := domain.NewCar(entry)
		require.NoError(t, err)
		cars = append(cars, car)
	}
	require.NoError(t, repo.InsertMany(context.Background(), cars))
	return repo, cars
}

func TestInsertManyRejectsDuplicateIDs(t *testing.T) {
	repo, cars := seed(t)

	err := repo.InsertMany(context.Background(), cars[:1])
	assert.ErrorContains(t, err, "already exists")

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)
}

func TestStoredCarsAreCopies(t *testing.T) {
	repo, cars := seed(t)
	ctx := context.Background()

	cars[0].HotVotes = 99
	got, err := repo.GetByID(ctx, cars[0].ID)
	require.NoError(t, err)
	assert.Zero(t, got.HotVotes)

	got.NotVotes = 42
	again, err := repo.GetByID(ctx, cars[0].ID)
	require.NoError(t, err)
	assert.Zero(t, again.NotVotes)
}

func TestIncrementVoteUnknownCar(t *testing.T) {
	repo, _ := seed(t)

	_, err := repo.IncrementVote(context.Background(), uuid.New(), domain.VoteHot)
	assert.ErrorIs(t, err, domain.ErrCarNotFound)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 10, count)
}

func TestConcurrentVotes(t *testing.T) {
	repo, cars := seed(t)
	ctx := context.Background()
	id := cars[0].ID

	var wg sync.WaitGroup
	for i := range 100 {
		vote := domain.VoteHot
		if i%4 == 0 {
			vote = domain.VoteNot
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementVote(ctx, id, vote)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	car, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 75, car.HotVotes)
	assert.EqualValues(t, 25, car.NotVotes)
}

func TestTopRatedOrdering(t *testing.T) {
	repo, cars := seed(t)
	ctx := context.Background()

	vote := func(car *domain.Car, v domain.VoteType, n int) {
		for range n {
			_, err := repo.IncrementVote(ctx, car.ID, v)
			require.NoError(t, err)
		}
	}
	vote(cars[1], domain.VoteHot, 1)
	vote(cars[1], domain.VoteNot, 3) // 25%
	vote(cars[2], domain.VoteHot, 2) // 100%, 2 votes
	vote(cars[3], domain.VoteHot, 5) // 100%, 5 votes

	top, err := repo.TopRated(ctx, 4)
	require.NoError(t, err)
	require.Len(t, top, 4)
	assert.Equal(t, cars[3].ID, top[0].ID)
	assert.Equal(t, cars[2].ID, top[1].ID)
	assert.Equal(t, cars[1].ID, top[2].ID)
	assert.Zero(t, top[3].TotalVotes())
}

func TestRandomOnEmptyStore(t *testing.T) {
	_, err := NewCarRepository().Random(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoCars)
}
