package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/identity"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

type TripService struct {
	trips      ports.TripRepository
	stays      ports.AccommodationRepository
	activities ports.ActivityRepository
	logger     zerolog.Logger
	now        func() time.Time
}

func NewTripService(trips ports.TripRepository, stays ports.AccommodationRepository, activities ports.ActivityRepository, logger zerolog.Logger) *TripService {
	return &TripService{trips: trips, stays: stays, activities: activities, logger: logger, now: time.Now}
}

// CreateTrip stores a trip owned by the caller.
func (s *TripService) CreateTrip(ctx context.Context, in ports.CreateTripInput) (*domain.Trip, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}

	trip := &domain.Trip{
		OwnerID:     caller.UserID,
		Title:       strings.TrimSpace(in.Title),
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	s.logger.Info().Str("trip_id", trip.ID).Str("owner_id", caller.UserID).Msg("trip created")
	return trip, nil
}

// ListTrips returns the caller's trips, or every trip for admins.
func (s *TripService) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	owner := caller.UserID
	if caller.IsAdmin() {
		owner = ""
	}
	return s.trips.List(ctx, owner)
}

// GetTrip hides trips the caller does not own behind ErrTripNotFound.
func (s *TripService) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !trip.VisibleTo(caller.UserID, caller.Role) {
		return nil, domain.ErrTripNotFound
	}
	return trip, nil
}

// DeleteTrip removes the trip with its accommodations and activities.
func (s *TripService) DeleteTrip(ctx context.Context, id string) error {
	trip, err := s.GetTrip(ctx, id)
	if err != nil {
		return err
	}
	if err := s.stays.DeleteByTrip(ctx, trip.ID); err != nil {
		return fmt.Errorf("delete trip accommodations: %w", err)
	}
	if err := s.activities.DeleteByTrip(ctx, trip.ID); err != nil {
		return fmt.Errorf("delete trip activities: %w", err)
	}
	return s.trips.Delete(ctx, trip.ID)
}

func (s *TripService) AddAccommodation(ctx context.Context, tripID string, in ports.CreateAccommodationInput) (*domain.Accommodation, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	a := &domain.Accommodation{
		TripID:    trip.ID,
		Name:      strings.TrimSpace(in.Name),
		Location:  in.Location,
		Price:     in.Price,
		Rating:    in.Rating,
		Type:      in.Type,
		Amenities: amenities,
		CheckIn:   in.CheckIn,
		CheckOut:  in.CheckOut,
		CreatedAt: s.now().UTC(),
	}
	if err := s.stays.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create accommodation: %w", err)
	}
	return a, nil
}

func (s *TripService) ListAccommodations(ctx context.Context, tripID string) ([]*domain.Accommodation, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.stays.ListByTrip(ctx, trip.ID)
}

// ListVisibleAccommodations returns accommodations across every trip the
// caller can see.
func (s *TripService) ListVisibleAccommodations(ctx context.Context) ([]*domain.Accommodation, error) {
	trips, err := s.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return []*domain.Accommodation{}, nil
	}
	ids := make([]string, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID)
	}
	return s.stays.ListByTrips(ctx, ids)
}

// DeleteAccommodation checks ownership through the parent trip.
func (s *TripService) DeleteAccommodation(ctx context.Context, id string) error {
	a, err := s.stays.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.GetTrip(ctx, a.TripID); err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			return domain.ErrAccommodationNotFound
		}
		return err
	}
	return s.stays.Delete(ctx, id)
}

func (s *TripService) AddActivity(ctx context.Context, tripID string, in ports.CreateActivityInput) (*domain.Activity, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.Date != "" {
		if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}

	a := &domain.Activity{
		TripID:    trip.ID,
		Name:      strings.TrimSpace(in.Name),
		Location:  in.Location,
		Date:      in.Date,
		Time:      in.Time,
		Category:  in.Category,
		Price:     in.Price,
		Rating:    in.Rating,
		CreatedAt: s.now().UTC(),
	}
	if err := s.activities.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return a, nil
}

func (s *TripService) ListActivities(ctx context.Context, tripID string) ([]*domain.Activity, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.activities.ListByTrip(ctx, trip.ID)
}

// DeleteActivity checks ownership through the parent trip.
func (s *TripService) DeleteActivity(ctx context.Context, id string) error {
	a, err := s.activities.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.GetTrip(ctx, a.TripID); err != nil {
		if errors.Is(err, domain.ErrTripNotFound) {
			return domain.ErrActivityNotFound
		}
		return err
	}
	return s.activities.Delete(ctx, id)
}
