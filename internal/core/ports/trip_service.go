package ports

import (
	"context"
	"time"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

type CreateTripInput struct {
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
}

type CreateAccommodationInput struct {
	Name      string
	Location  string
	Price     float64
	Rating    int
	Type      string
	Amenities []string
	CheckIn   string
	CheckOut  string
}

// TripService resolves the acting user from the identity context; callers
// only see trips they own unless they are admins.
type CreateActivityInput struct {
	Name     string
	Location string
	Date     string
	Time     string
	Category string
	Price    float64
	Rating   int
}

type TripService interface {
	CreateTrip(ctx context.Context, in CreateTripInput) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error

	AddAccommodation(ctx context.Context, tripID string, in CreateAccommodationInput) (*domain.Accommodation, error)
	ListAccommodations(ctx context.Context, tripID string) ([]*domain.Accommodation, error)
	ListVisibleAccommodations(ctx context.Context) ([]*domain.Accommodation, error)
	DeleteAccommodation(ctx context.Context, id string) error

	AddActivity(ctx context.Context, tripID string, in CreateActivityInput) (*domain.Activity, error)
	ListActivities(ctx context.Context, tripID string) ([]*domain.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}
