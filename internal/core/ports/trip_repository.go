package ports

import (
	"context"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// TripRepository persists trips. An empty ownerID in List means all trips.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	FindByID(ctx context.Context, id string) (*domain.Trip, error)
	List(ctx context.Context, ownerID string) ([]*domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

type AccommodationRepository interface {
	Create(ctx context.Context, a *domain.Accommodation) error
	FindByID(ctx context.Context, id string) (*domain.Accommodation, error)
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Accommodation, error)
	ListByTrips(ctx context.Context, tripIDs []string) ([]*domain.Accommodation, error)
	Delete(ctx context.Context, id string) error
	DeleteByTrip(ctx context.Context, tripID string) error
}

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.Activity) error
	FindByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByTrip(ctx context.Context, tripID string) ([]*domain.Activity, error)
	Delete(ctx context.Context, id string) error
	DeleteByTrip(ctx context.Context, tripID string) error
}
