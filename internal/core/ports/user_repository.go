package ports

import (
	"context"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// UserRepository is the credential store. Lookups report presence explicitly
// instead of returning a not-found error; Create must enforce email
// uniqueness at the storage level and return domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	FindByID(ctx context.Context, id string) (*domain.User, bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
