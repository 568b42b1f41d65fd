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
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const collectionActivities = "activities"

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TripID    string             `bson:"trip_id"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Category  string             `bson:"category"`
	Price     float64            `bson:"price"`
	Rating    int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d activityDoc) toDomain() *domain.Activity {
	return &domain.Activity{
		ID:        d.ID.Hex(),
		TripID:    d.TripID,
		Name:      d.Name,
		Location:  d.Location,
		Date:      d.Date,
		Time:      d.Time,
		Category:  d.Category,
		Price:     d.Price,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, activityDoc{
		TripID:    a.TripID,
		Name:      a.Name,
		Location:  a.Location,
		Date:      a.Date,
		Time:      a.Time,
		Category:  a.Category,
		Price:     a.Price,
		Rating:    a.Rating,
		CreatedAt: a.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrActivityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc activityDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByTrip returns a trip's activities in date and time order.
func (r *ActivityRepository) ListByTrip(ctx context.Context, tripID string) ([]*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"trip_id": tripID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer cur.Close(ctx)

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	out := make([]*domain.Activity, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrActivityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepository) DeleteByTrip(ctx context.Context, tripID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"trip_id": tripID}); err != nil {
		return fmt.Errorf("delete trip activities: %w", err)
	}
	return nil
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "trip_id", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("activities indexes: %w", err)
	}
	return nil
}
