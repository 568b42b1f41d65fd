package handler

import (
	"time"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
	Name     string `json:"name"     validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is returned by login and by the credential check.
type loginResponse struct {
	Message string      `json:"message"`
	UserID  string      `json:"userId"`
	Email   string      `json:"email"`
	Name    string      `json:"name"`
	Role    domain.Role `json:"role"`
	Token   string      `json:"token"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type meResponse struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	Method string      `json:"method"`
}

// --- Users ---

type preferencesRequest struct {
	Language      string `json:"language"      validate:"omitempty,len=2"`
	Currency      string `json:"currency"      validate:"omitempty,len=3"`
	Notifications *bool  `json:"notifications"`
}

type profileRequest struct {
	Name        string              `json:"name"     validate:"max=100"`
	Password    string              `json:"password" validate:"omitempty,min=3"`
	Phone       string              `json:"phone"    validate:"max=32"`
	Address     string              `json:"address"  validate:"max=255"`
	Preferences *preferencesRequest `json:"preferences"`
	// Role is read and discarded; self-service updates never change it.
	Role string `json:"role,omitempty"`
}

type userRequest struct {
	Email       string              `json:"email"    validate:"omitempty,email"`
	Password    string              `json:"password" validate:"omitempty,min=3"`
	Name        string              `json:"name"     validate:"max=100"`
	Role        string              `json:"role"`
	Phone       string              `json:"phone"    validate:"max=32"`
	Address     string              `json:"address"  validate:"max=255"`
	Preferences *preferencesRequest `json:"preferences"`
}

type userResponse struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Role        domain.Role        `json:"role"`
	Phone       string             `json:"phone,omitempty"`
	Address     string             `json:"address,omitempty"`
	Preferences domain.Preferences `json:"preferences"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// --- Trips ---

type tripRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Destination string    `json:"destination" validate:"max=200"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type accommodationRequest struct {
	Name      string   `json:"name"     validate:"required,max=200"`
	Location  string   `json:"location" validate:"max=255"`
	Price     float64  `json:"price"    validate:"gte=0"`
	Rating    int      `json:"rating"   validate:"gte=0,lte=5"`
	Type      string   `json:"type"`
	Amenities []string `json:"amenities"`
	CheckIn   string   `json:"check_in"`
	CheckOut  string   `json:"check_out"`
}

type activityRequest struct {
	Name     string  `json:"name"     validate:"required,max=200"`
	Location string  `json:"location" validate:"max=255"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Category string  `json:"category" validate:"max=64"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Rating   int     `json:"rating"   validate:"gte=0,lte=5"`
}

type messageResponse struct {
	Message string `json:"message"`
}
