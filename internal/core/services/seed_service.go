package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
)

type seedService struct {
	repo    ports.CarRepository
	catalog []domain.CatalogEntry
}

func NewSeedService(repo ports.CarRepository, catalog []domain.CatalogEntry) ports.SeedService {
	return &seedService{
		repo:    repo,
		catalog: catalog,
	}
}

// Seed installs the catalog into an empty store. A store that already holds
// any car is left untouched, so running it more than once is harmless.
func (s *seedService) Seed(ctx context.Context) (ports.SeedResult, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return ports.SeedResult{}, fmt.Errorf("failed to count cars: %w", err)
	}
	if existing > 0 {
		return ports.SeedResult{Skipped: true, Existing: existing}, nil
	}

	cars := make([]*domain.Car, 0, len(s.catalog))
	for _, entry := range s.catalog {
		car, err := domain.NewCar(entry)
		if err != nil {
			return ports.SeedResult{}, err
		}
		cars = append(cars, car)
	}

	if len(cars) == 0 {
		return ports.SeedResult{}, nil
	}

	if err := s.repo.InsertMany(ctx, cars); err != nil {
		return ports.SeedResult{}, fmt.Errorf("failed to insert cars: %w", err)
	}

	return ports.SeedResult{Inserted: cars}, nil
}
