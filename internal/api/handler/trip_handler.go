package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/core/ports"
)

// TripHandler serves trips and their accommodations.
type TripHandler struct {
	service ports.TripService
}

func NewTripHandler(service ports.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// Create handles POST /api/trips.
//
// @Summary      Create a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tripRequest  true  "Trip"
// @Success      201   {object}  domain.Trip
// @Failure      400   {object}  middleware.ErrorBody
// @Router       /api/trips [post]
func (h *TripHandler) Create(c echo.Context) error {
	var req tripRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	trip, err := h.service.CreateTrip(c.Request().Context(), toTripInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trip)
}

// List handles GET /api/trips.
//
// @Summary      List my trips
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Trip
// @Router       /api/trips [get]
func (h *TripHandler) List(c echo.Context) error {
	trips, err := h.service.ListTrips(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trips)
}

// Get handles GET /api/trips/:id.
//
// @Summary      Get a trip
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Trip ID"
// @Success      200  {object}  domain.Trip
// @Failure      404  {object}  middleware.ErrorBody
// @Router       /api/trips/{id} [get]
func (h *TripHandler) Get(c echo.Context) error {
	trip, err := h.service.GetTrip(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trip)
}

// Delete handles DELETE /api/trips/:id.
//
// @Summary      Delete a trip
// @Tags         trips
// @Security     BearerAuth
// @Param        id   path  string  true  "Trip ID"
// @Success      204
// @Failure      404  {object}  middleware.ErrorBody
// @Router       /api/trips/{id} [delete]
func (h *TripHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTrip(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddAccommodation handles POST /api/trips/:id/accommodations.
//
// @Summary      Add an accommodation
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Trip ID"
// @Param        body  body      accommodationRequest  true  "Accommodation"
// @Success      201   {object}  domain.Accommodation
// @Failure      400   {object}  middleware.ErrorBody
// @Failure      404   {object}  middleware.ErrorBody
// @Router       /api/trips/{id}/accommodations [post]
func (h *TripHandler) AddAccommodation(c echo.Context) error {
	var req accommodationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.AddAccommodation(c.Request().Context(), c.Param("id"), toAccommodationInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// ListAccommodations handles GET /api/trips/:id/accommodations.
//
// @Summary      List accommodations of a trip
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Trip ID"
// @Success      200  {array}  domain.Accommodation
// @Router       /api/trips/{id}/accommodations [get]
func (h *TripHandler) ListAccommodations(c echo.Context) error {
	list, err := h.service.ListAccommodations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListVisibleAccommodations handles GET /api/accommodations.
//
// @Summary      List accommodations across the caller's trips
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Accommodation
// @Router       /api/accommodations [get]
func (h *TripHandler) ListVisibleAccommodations(c echo.Context) error {
	list, err := h.service.ListVisibleAccommodations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteAccommodation handles DELETE /api/accommodations/:id.
//
// @Summary      Delete an accommodation
// @Tags         accommodations
// @Security     BearerAuth
// @Param        id   path  string  true  "Accommodation ID"
// @Success      204
// @Failure      404  {object}  middleware.ErrorBody
// @Router       /api/accommodations/{id} [delete]
func (h *TripHandler) DeleteAccommodation(c echo.Context) error {
	if err := h.service.DeleteAccommodation(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddActivity handles POST /api/trips/:id/activities.
//
// @Summary      Add an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Trip ID"
// @Param        body  body      activityRequest  true  "Activity"
// @Success      201   {object}  domain.Activity
// @Failure      400   {object}  middleware.ErrorBody
// @Failure      404   {object}  middleware.ErrorBody
// @Router       /api/trips/{id}/activities [post]
func (h *TripHandler) AddActivity(c echo.Context) error {
	var req activityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.AddActivity(c.Request().Context(), c.Param("id"), toActivityInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// ListActivities handles GET /api/trips/:id/activities.
//
// @Summary      List activities of a trip
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Trip ID"
// @Success      200  {array}  domain.Activity
// @Router       /api/trips/{id}/activities [get]
func (h *TripHandler) ListActivities(c echo.Context) error {
	list, err := h.service.ListActivities(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteActivity handles DELETE /api/activities/:id.
//
// @Summary      Delete an activity
// @Tags         activities
// @Security     BearerAuth
// @Param        id   path  string  true  "Activity ID"
// @Success      204
// @Failure      404  {object}  middleware.ErrorBody
// @Router       /api/activities/{id} [delete]
func (h *TripHandler) DeleteActivity(c echo.Context) error {
	if err := h.service.DeleteActivity(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
