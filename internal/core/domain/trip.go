package domain

import "time"

// Trip is owned by exactly one user.
type Trip struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Destination string    `json:"destination" bson:"destination"`
	StartDate   time.Time `json:"start_date" bson:"start_date"`
	EndDate     time.Time `json:"end_date" bson:"end_date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// VisibleTo reports whether the trip can be read or changed by the caller.
func (t *Trip) VisibleTo(userID string, role Role) bool {
	return role == RoleAdmin || t.OwnerID == userID
}

// Accommodation is a stay booked as part of a trip.
type Accommodation struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TripID    string    `json:"trip_id" bson:"trip_id"`
	Name      string    `json:"name" bson:"name"`
	Location  string    `json:"location" bson:"location"`
	Price     float64   `json:"price" bson:"price"`
	Rating    int       `json:"rating" bson:"rating"`
	Type      string    `json:"type" bson:"type"`
	Amenities []string  `json:"amenities" bson:"amenities"`
	CheckIn   string    `json:"check_in" bson:"check_in"`
	CheckOut  string    `json:"check_out" bson:"check_out"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Activity is something planned during a trip. Date and Time are kept as
// entered ("2026-07-02", "14:30").
type Activity struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	TripID    string    `json:"trip_id" bson:"trip_id"`
	Name      string    `json:"name" bson:"name"`
	Location  string    `json:"location" bson:"location"`
	Date      string    `json:"date" bson:"date"`
	Time      string    `json:"time" bson:"time"`
	Category  string    `json:"category" bson:"category"`
	Price     float64   `json:"price" bson:"price"`
	Rating    int       `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
