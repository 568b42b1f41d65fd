package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrUnauthenticated    = errors.New("no authenticated identity in scope")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Users.
var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidInput   = errors.New("invalid input")
)

// Trips.
var (
	ErrTripNotFound          = errors.New("trip not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrActivityNotFound      = errors.New("activity not found")
)
