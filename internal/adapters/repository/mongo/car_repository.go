package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/hotornot/internal/core/domain"
	"github.com/vncsmyrnk/hotornot/internal/core/ports"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const CarsCollection = "cars"

// carDocument is the stored shape of a car. The id is kept as a string field
// next to Mongo's own _id so records stay readable by other clients.
type carDocument struct {
	ID        string    `bson:"id"`
	Make      string    `bson:"make"`
	Model     string    `bson:"model"`
	Year      int       `bson:"year"`
	ImageURL  string    `bson:"image_url"`
	HotVotes  int64     `bson:"hot_votes"`
	NotVotes  int64     `bson:"not_votes"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDocument(car *domain.Car) carDocument {
	return carDocument{
		ID:        car.ID.String(),
		Make:      car.Make,
		Model:     car.Model,
		Year:      car.Year,
		ImageURL:  car.ImageURL,
		HotVotes:  car.HotVotes,
		NotVotes:  car.NotVotes,
		CreatedAt: car.CreatedAt,
	}
}

func (d carDocument) toDomain() (*domain.Car, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("stored car has malformed id %q: %w", d.ID, err)
	}
	return &domain.Car{
		ID:        id,
		Make:      d.Make,
		Model:     d.Model,
		Year:      d.Year,
		ImageURL:  d.ImageURL,
		HotVotes:  d.HotVotes,
		NotVotes:  d.NotVotes,
		CreatedAt: d.CreatedAt,
	}, nil
}

type carRepository struct {
	cars *mongo.Collection
}

func NewCarRepository(db *mongo.Database) ports.CarRepository {
	return &carRepository{
		cars: db.Collection(CarsCollection),
	}
}

// EnsureIndexes creates the unique index on the car id.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CarsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("cars_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create cars index: %w", err)
	}
	return nil
}

func (r *carRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.cars.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return count, nil
}

func (r *carRepository) InsertMany(ctx context.Context, cars []*domain.Car) error {
	docs := make([]any, 0, len(cars))
	for _, car := range cars {
		docs = append(docs, toDocument(car))
	}

	if _, err := r.cars.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert cars: %w", err)
	}
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	var doc carDocument
	err := r.cars.FindOne(ctx, bson.D{{Key: "id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return doc.toDomain()
}

func (r *carRepository) Random(ctx context.Context) (*domain.Car, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}

	docs, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to sample car: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNoCars
	}
	return docs[0].toDomain()
}

func (r *carRepository) IncrementVote(ctx context.Context, id uuid.UUID, vote domain.VoteType) (*domain.Car, error) {
	var field string
	switch vote {
	case domain.VoteHot:
		field = "hot_votes"
	case domain.VoteNot:
		field = "not_votes"
	default:
		return nil, domain.ErrInvalidVoteType
	}

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: field, Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc carDocument
	err := r.cars.FindOneAndUpdate(ctx, bson.D{{Key: "id", Value: id.String()}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to update votes: %w", err)
	}
	return doc.toDomain()
}

func (r *carRepository) TopRated(ctx context.Context, limit int) ([]*domain.Car, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.D{
			{Key: "total_votes", Value: bson.D{{Key: "$add", Value: bson.A{"$hot_votes", "$not_votes"}}}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "hot_share", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$total_votes", 0}}},
				0,
				bson.D{{Key: "$divide", Value: bson.A{"$hot_votes", "$total_votes"}}},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "hot_share", Value: -1},
			{Key: "total_votes", Value: -1},
			{Key: "make", Value: 1},
			{Key: "model", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	docs, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated cars: %w", err)
	}

	cars := make([]*domain.Car, 0, len(docs))
	for _, doc := range docs {
		car, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, nil
}

func (r *carRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]carDocument, error) {
	cursor, err := r.cars.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []carDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
