package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

// SeedAdmin creates an ADMIN account when email is not yet registered. An
// existing account is left as is, whatever its password or role.
func SeedAdmin(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger, email, password, name string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("seed admin: %w: email and password are required", domain.ErrInvalidInput)
	}

	_, found, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if found {
		logger.Info().Msg("admin seed skipped, account already exists")
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if name == "" {
		name = "Admin"
	}
	now := time.Now().UTC()
	prefs := domain.DefaultPreferences()
	_, err = repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         domain.RoleAdmin,
		Preferences:  &prefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Lost a race with another instance seeding the same account.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	logger.Info().Msg("admin account seeded")
	return nil
}
