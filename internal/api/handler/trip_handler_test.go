package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

type stubTripService struct {
	ports.TripService
	created    *ports.CreateTripInput
	stayIn     *ports.CreateAccommodationInput
	activityIn *ports.CreateActivityInput
	tripID     string
	deleted    string
}

func (s *stubTripService) CreateTrip(_ context.Context, in ports.CreateTripInput) (*domain.Trip, error) {
	s.created = &in
	return &domain.Trip{ID: "t1", Title: in.Title}, nil
}

func (s *stubTripService) GetTrip(_ context.Context, id string) (*domain.Trip, error) {
	return nil, domain.ErrTripNotFound
}

func (s *stubTripService) AddAccommodation(_ context.Context, tripID string, in ports.CreateAccommodationInput) (*domain.Accommodation, error) {
	s.tripID = tripID
	s.stayIn = &in
	return &domain.Accommodation{ID: "a1", TripID: tripID, Name: in.Name}, nil
}

func (s *stubTripService) AddActivity(_ context.Context, tripID string, in ports.CreateActivityInput) (*domain.Activity, error) {
	s.tripID = tripID
	s.activityIn = &in
	return &domain.Activity{ID: "act1", TripID: tripID, Name: in.Name}, nil
}

func (s *stubTripService) ListVisibleAccommodations(context.Context) ([]*domain.Accommodation, error) {
	return []*domain.Accommodation{{ID: "a1", Name: "Casa"}}, nil
}

func (s *stubTripService) DeleteActivity(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

func TestTripHandler_Create(t *testing.T) {
	svc := &stubTripService{}
	h := NewTripHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/trips", `{"title":"Lisbon","destination":"PT","start_date":"2026-05-01T00:00:00Z","end_date":"2026-05-07T00:00:00Z"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.created.Title != "Lisbon" || svc.created.EndDate.Day() != 7 {
		t.Fatalf("unexpected input %+v", svc.created)
	}
}

func TestTripHandler_Create_Validation(t *testing.T) {
	h := NewTripHandler(&stubTripService{})

	c, _ := newContext(http.MethodPost, "/api/trips", `{"destination":"PT"}`)
	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTripHandler_Get_NotFoundIsReturned(t *testing.T) {
	h := NewTripHandler(&stubTripService{})

	c, _ := newContext(http.MethodGet, "/api/trips/t9", "")
	c.SetParamNames("id")
	c.SetParamValues("t9")
	if err := h.Get(c); !errors.Is(err, domain.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestTripHandler_AddAccommodation(t *testing.T) {
	svc := &stubTripService{}
	h := NewTripHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/trips/t1/accommodations", `{"name":"Casa","rating":4,"amenities":["wifi"]}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.AddAccommodation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || svc.tripID != "t1" || svc.stayIn.Rating != 4 {
		t.Fatalf("unexpected result %d %q %+v", rec.Code, svc.tripID, svc.stayIn)
	}

	c, _ = newContext(http.MethodPost, "/api/trips/t1/accommodations", `{"name":"Casa","rating":9}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.AddAccommodation(c); err == nil {
		t.Fatal("expected rating above 5 to be rejected")
	}
}

func TestTripHandler_AddActivity(t *testing.T) {
	svc := &stubTripService{}
	h := NewTripHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/trips/t1/activities", `{"name":"Tram 28","date":"2026-07-02","time":"10:00","category":"sightseeing","rating":5}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.AddActivity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || svc.tripID != "t1" || svc.activityIn.Date != "2026-07-02" || svc.activityIn.Category != "sightseeing" {
		t.Fatalf("unexpected result %d %q %+v", rec.Code, svc.tripID, svc.activityIn)
	}

	c, _ = newContext(http.MethodPost, "/api/trips/t1/activities", `{"date":"2026-07-02"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	var he *echo.HTTPError
	if err := h.AddActivity(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %v", err)
	}
}

func TestTripHandler_DeleteActivity(t *testing.T) {
	svc := &stubTripService{}
	h := NewTripHandler(svc)

	c, rec := newContext(http.MethodDelete, "/api/activities/act1", "")
	c.SetParamNames("id")
	c.SetParamValues("act1")
	if err := h.DeleteActivity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || svc.deleted != "act1" {
		t.Fatalf("unexpected result %d %q", rec.Code, svc.deleted)
	}
}

func TestTripHandler_ListVisibleAccommodations(t *testing.T) {
	h := NewTripHandler(&stubTripService{})

	c, rec := newContext(http.MethodGet, "/api/accommodations", "")
	if err := h.ListVisibleAccommodations(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"Casa"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
