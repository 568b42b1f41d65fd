package ports

import (
	"context"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// ProfileInput is a self-service update. Role is deliberately absent and an
// empty Password keeps the stored hash.
type ProfileInput struct {
	Name        string
	Password    string
	Phone       string
	Address     string
	Preferences *domain.PreferencesPatch
}

// UserInput is an administrative create or update. Role is free text and is
// validated with domain.ParseRole.
type UserInput struct {
	Email       string
	Password    string
	Name        string
	Role        string
	Phone       string
	Address     string
	Preferences *domain.PreferencesPatch
}

type UserService interface {
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*domain.User, error)

	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
