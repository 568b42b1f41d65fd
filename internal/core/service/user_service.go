package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/identity"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

// UserService serves the self-service profile and user administration.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger, now: time.Now}
}

// Profile returns the record of the calling user.
func (s *UserService) Profile(ctx context.Context) (*domain.User, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, caller.UserID)
}

// UpdateProfile applies a self-service update to the calling user. Role and
// email are never touched; the password hash changes only when a new
// password is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	user.Phone = in.Phone
	user.Address = in.Address
	if in.Preferences != nil {
		prefs := in.Preferences.Apply(user.EffectivePreferences())
		user.Preferences = &prefs
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Create adds a user with an explicit role. An empty role means USER.
func (s *UserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	role := domain.RoleUser
	if in.Role != "" {
		r, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	prefs := domain.DefaultPreferences()
	if in.Preferences != nil {
		prefs = in.Preferences.Apply(prefs)
	}
	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Phone:        in.Phone,
		Address:      in.Address,
		Preferences:  &prefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", role.String()).Msg("user created by admin")
	return created, nil
}

// Update replaces a user's editable fields. An empty role or password keeps
// the stored value.
func (s *UserService) Update(ctx context.Context, id string, in ports.UserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != "" {
		role, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		user.Email = email
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	user.Phone = in.Phone
	user.Address = in.Address
	if in.Preferences != nil {
		prefs := in.Preferences.Apply(user.EffectivePreferences())
		user.Preferences = &prefs
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
