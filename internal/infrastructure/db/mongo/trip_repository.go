package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

const collectionTrips = "trips"

type TripRepository struct {
	col *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{col: db.Collection(collectionTrips)}
}

type tripDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	Destination string             `bson:"destination"`
	StartDate   time.Time          `bson:"start_date"`
	EndDate     time.Time          `bson:"end_date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d tripDoc) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID,
		Title:       d.Title,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		CreatedAt:   d.CreatedAt,
	}
}

// Create inserts the trip and sets its ID.
func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, tripDoc{
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate.UTC(),
		EndDate:     t.EndDate.UTC(),
		CreatedAt:   t.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*domain.Trip, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTripNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tripDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns trips ordered by start date. An empty ownerID lists all trips.
func (r *TripRepository) List(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cur.Close(ctx)

	var docs []tripDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	trips := make([]*domain.Trip, 0, len(docs))
	for _, d := range docs {
		trips = append(trips, d.toDomain())
	}
	return trips, nil
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrTripNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *TripRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "start_date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("trips indexes: %w", err)
	}
	return nil
}
