package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService backed by repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single auth event, assigning an id when missing.
func (s *auditService) Process(ctx context.Context, ev domain.AuthEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("process auth event: %w", err)
	}

	s.log.Debug().
		Str("event_id", ev.ID).
		Str("type", string(ev.Type)).
		Msg("auth event stored")
	return nil
}

// Recent returns the newest events first. limit is clamped to a sane range.
func (s *auditService) Recent(ctx context.Context, limit int) ([]*domain.AuthEvent, error) {
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}
	return s.repo.Recent(ctx, limit)
}
