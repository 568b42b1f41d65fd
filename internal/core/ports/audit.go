package ports

import (
	"context"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// AuditRepository persists auth events.
type AuditRepository interface {
	Insert(ctx context.Context, ev *domain.AuthEvent) error
	Recent(ctx context.Context, limit int) ([]*domain.AuthEvent, error)
}

// AuditRecorder accepts events without blocking the caller.
type AuditRecorder interface {
	Record(ev domain.AuthEvent)
}

// AuditService processes dequeued events and serves the admin listing.
type AuditService interface {
	Process(ctx context.Context, ev domain.AuthEvent) error
	Recent(ctx context.Context, limit int) ([]*domain.AuthEvent, error)
}
