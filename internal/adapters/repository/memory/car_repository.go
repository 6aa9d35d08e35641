// Package memory keeps cars in process memory. It backs local runs without a
// database and the handler and probe tests.
package memory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
)

type carRepository struct {
	cars cmap.ConcurrentMap[string, domain.Car]
}

func NewCarRepository() ports.CarRepository {
	return &carRepository{
		cars: cmap.New[domain.Car](),
	}
}

func (r *carRepository) Count(ctx context.Context) (int64, error) {
	return int64(r.cars.Count()), nil
}

func (r *carRepository) InsertMany(ctx context.Context, cars []*domain.Car) error {
	for _, car := range cars {
		if !r.cars.SetIfAbsent(car.ID.String(), *car) {
			return fmt.Errorf("car %s already exists", car.ID)
		}
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	car, ok := r.cars.Get(id.String())
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	return &car, nil
}

func (r *carRepository) Random(ctx context.Context) (*domain.Car, error) {
	keys := r.cars.Keys()
	if len(keys) == 0 {
		return nil, domain.ErrNoCars
	}

	car, _ := r.cars.Get(keys[rand.IntN(len(keys))])
	return &car, nil
}

func (r *carRepository) IncrementVote(ctx context.Context, id uuid.UUID, vote domain.VoteType) (*domain.Car, error) {
	key := id.String()
	if !r.cars.Has(key) {
		return nil, domain.ErrCarNotFound
	}

	// Cars are never removed, so the key is still present inside Upsert.
	updated := r.cars.Upsert(key, domain.Car{}, func(exist bool, current, _ domain.Car) domain.Car {
		switch vote {
		case domain.VoteHot:
			current.HotVotes++
		case domain.VoteNot:
			current.NotVotes++
		}
		return current
	})
	return &updated, nil
}

func (r *carRepository) TopRated(ctx context.Context, limit int) ([]*domain.Car, error) {
	items := r.cars.Items()
	cars := make([]*domain.Car, 0, len(items))
	for _, car := range items {
		cars = append(cars, &car)
	}

	sort.Slice(cars, func(i, j int) bool {
		return domain.RanksAbove(*cars[i], *cars[j])
	})

	if len(cars) > limit {
		cars = cars[:limit]
	}
	return cars, nil
}
