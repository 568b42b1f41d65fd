package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

const collectionAccommodations = "accommodations"

type AccommodationRepository struct {
	col *mongo.Collection
}

func NewAccommodationRepository(db *mongo.Database) *AccommodationRepository {
	return &AccommodationRepository{col: db.Collection(collectionAccommodations)}
}

type accommodationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TripID    string             `bson:"trip_id"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location"`
	Price     float64            `bson:"price"`
	Rating    int                `bson:"rating"`
	Type      string             `bson:"type"`
	Amenities []string           `bson:"amenities"`
	CheckIn   string             `bson:"check_in"`
	CheckOut  string             `bson:"check_out"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d accommodationDoc) toDomain() *domain.Accommodation {
	amenities := d.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &domain.Accommodation{
		ID:        d.ID.Hex(),
		TripID:    d.TripID,
		Name:      d.Name,
		Location:  d.Location,
		Price:     d.Price,
		Rating:    d.Rating,
		Type:      d.Type,
		Amenities: amenities,
		CheckIn:   d.CheckIn,
		CheckOut:  d.CheckOut,
		CreatedAt: d.CreatedAt,
	}
}

func (r *AccommodationRepository) Create(ctx context.Context, a *domain.Accommodation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, accommodationDoc{
		TripID:    a.TripID,
		Name:      a.Name,
		Location:  a.Location,
		Price:     a.Price,
		Rating:    a.Rating,
		Type:      a.Type,
		Amenities: a.Amenities,
		CheckIn:   a.CheckIn,
		CheckOut:  a.CheckOut,
		CreatedAt: a.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert accommodation: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *AccommodationRepository) FindByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrAccommodationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accommodationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrAccommodationNotFound
		}
		return nil, fmt.Errorf("find accommodation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccommodationRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Accommodation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accommodationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accommodations: %w", err)
	}
	out := make([]*domain.Accommodation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// ListByTrips returns the accommodations of every trip in tripIDs.
func (r *AccommodationRepository) ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Accommodation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"trip_id": bson.M{"$in": tripIDs}})
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accommodationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accommodations: %w", err)
	}
	out := make([]*domain.Accommodation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *AccommodationRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrAccommodationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete accommodation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccommodationNotFound
	}
	return nil
}

func (r *AccommodationRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"trip_id": tripID}); err != nil {
		return fmt.Errorf("delete trip accommodations: %w", err)
	}
	return nil
}

func (r *AccommodationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "trip_id", Value: 1}}})
	if err != nil {
		return fmt.Errorf("accommodations indexes: %w", err)
	}
	return nil
}
