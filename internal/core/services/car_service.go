package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 50
)

type carService struct {
	repo ports.CarRepository
}

func NewCarService(repo ports.CarRepository) ports.CarService {
	return &carService{
		repo: repo,
	}
}

func (s *carService) RandomCar(ctx context.Context) (*domain.Car, error) {
	return s.repo.Random(ctx)
}

func (s *carService) GetCar(ctx context.Context, id string) (*domain.Car, error) {
	carID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidCarID
	}

	return s.repo.GetByID(ctx, carID)
}

// Vote records a single hot or not vote. The counter is incremented by the
// store in one atomic operation, so concurrent votes are never lost.
func (s *carService) Vote(ctx context.Context, input ports.VoteInput) (*domain.Car, error) {
	carID, err := uuid.Parse(input.CarID)
	if err != nil {
		return nil, domain.ErrInvalidCarID
	}

	voteType, err := domain.ParseVoteType(input.VoteType)
	if err != nil {
		return nil, err
	}

	car, err := s.repo.IncrementVote(ctx, carID, voteType)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s vote: %w", voteType, err)
	}

	return car, nil
}

func (s *carService) Leaderboard(ctx context.Context, limit int) ([]*domain.Car, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	return s.repo.TopRated(ctx, limit)
}
