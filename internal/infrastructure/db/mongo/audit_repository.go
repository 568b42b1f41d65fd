package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const collectionAuthEvents = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuthEvents)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

type authEventDoc struct {
	ID          string    `bson:"_id"`
	Type        string    `bson:"type"`
	Email       string    `bson:"email,omitempty"`
	Role        string    `bson:"role,omitempty"`
	Path        string    `bson:"path,omitempty"`
	RemoteIP    string    `bson:"remote_ip,omitempty"`
	Timestamp   time.Time `bson:"timestamp"`
	ProcessedAt time.Time `bson:"processed_at"`
}

// Insert appends an event to the auth_events collection.
func (r *AuditRepository) Insert(ctx context.Context, ev *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, authEventDoc{
		ID:          ev.ID,
		Type:        string(ev.Type),
		Email:       ev.Email,
		Role:        ev.Role.String(),
		Path:        ev.Path,
		RemoteIP:    ev.RemoteIP,
		Timestamp:   ev.Timestamp.UTC(),
		ProcessedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]*domain.AuthEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []authEventDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode auth events: %w", err)
	}

	events := make([]*domain.AuthEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, &domain.AuthEvent{
			ID:        d.ID,
			Type:      domain.AuthEventType(d.Type),
			Email:     d.Email,
			Role:      domain.Role(d.Role),
			Path:      d.Path,
			RemoteIP:  d.RemoteIP,
			Timestamp: d.Timestamp,
		})
	}
	return events, nil
}

// EnsureIndexes creates the timestamp index used by Recent.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "timestamp", Value: -1}}})
	if err != nil {
		return fmt.Errorf("auth_events indexes: %w", err)
	}
	return nil
}
