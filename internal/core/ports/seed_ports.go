package ports

import (
	"context"

	"github.com/vncsmyrnk/hotornot/internal/core/domain"
)

type SeedResult struct {
	Skipped  bool
	Existing int64
	Inserted []*domain.Car
}

type SeedService interface {
	Seed(ctx context.Context) (SeedResult, error)
}
