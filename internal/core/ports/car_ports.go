package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
)

type CarRepository interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, cars []*domain.Car) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	Random(ctx context.Context) (*domain.Car, error)
	IncrementVote(ctx context.Context, id uuid.UUID, vote domain.VoteType) (*domain.Car, error)
	TopRated(ctx context.Context, limit int) ([]*domain.Car, error)
}

type VoteInput struct {
	CarID    string
	VoteType string
}

type CarService interface {
	RandomCar(ctx context.Context) (*domain.Car, error)
	GetCar(ctx context.Context, id string) (*domain.Car, error)
	Vote(ctx context.Context, input VoteInput) (*domain.Car, error)
	Leaderboard(ctx context.Context, limit int) ([]*domain.Car, error)
}
