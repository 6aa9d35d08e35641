package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
)

const carColumns = `id, make, model, year, image_url, hot_votes, not_votes, created_at`

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) ports.CarRepository {
	return &carRepository{
		db: db,
	}
}

func (r *carRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cars`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return count, nil
}

func (r *carRepository) InsertMany(ctx context.Context, cars []*domain.Car) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cars (id, make, model, year, image_url, hot_votes, not_votes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare car statement: %w", err)
	}
	defer stmt.Close()

	for _, car := range cars {
		_, err = stmt.ExecContext(ctx, car.ID, car.Make, car.Model, car.Year, car.ImageURL, car.HotVotes, car.NotVotes, car.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert car %s: %w", car.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), domain.ErrCarNotFound)
}

func (r *carRepository) Random(ctx context.Context) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY random() LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query), domain.ErrNoCars)
}

func (r *carRepository) IncrementVote(ctx context.Context, id uuid.UUID, vote domain.VoteType) (*domain.Car, error) {
	var query string
	switch vote {
	case domain.VoteHot:
		query = `UPDATE cars SET hot_votes = hot_votes + 1 WHERE id = $1 RETURNING ` + carColumns
	case domain.VoteNot:
		query = `UPDATE cars SET not_votes = not_votes + 1 WHERE id = $1 RETURNING ` + carColumns
	default:
		return nil, domain.ErrInvalidVoteType
	}

	return r.scanOne(r.db.QueryRowContext(ctx, query, id), domain.ErrCarNotFound)
}

func (r *carRepository) TopRated(ctx context.Context, limit int) ([]*domain.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars
		ORDER BY
			CASE WHEN hot_votes + not_votes = 0 THEN 0
			     ELSE hot_votes::float8 / (hot_votes + not_votes) END DESC,
			hot_votes + not_votes DESC,
			make ASC,
			model ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated cars: %w", err)
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.ImageURL, &car.HotVotes, &car.NotVotes, &car.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		cars = append(cars, &car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cars: %w", err)
	}
	return cars, nil
}

func (r *carRepository) scanOne(row *sql.Row, notFound error) (*domain.Car, error) {
	var car domain.Car
	err := row.Scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.ImageURL, &car.HotVotes, &car.NotVotes, &car.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return &car, nil
}
