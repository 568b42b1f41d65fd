package ports

import (
	"context"
	"time"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// RegisterInput is the self-registration payload. Role is not accepted.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// IdentitySummary is the public-safe view of a user.
type IdentitySummary struct {
	ID    string      `json:"userId"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  IdentitySummary
}

// LoginMeta carries request details recorded in the audit trail.
type LoginMeta struct {
	RemoteIP string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string, meta LoginMeta) (*LoginResult, error)
	// Authenticate checks a credential pair without minting a token. Used for
	// HTTP Basic credentials.
	Authenticate(ctx context.Context, email, password string, meta LoginMeta) (*domain.User, error)
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Exceeded(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
