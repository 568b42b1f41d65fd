// Package identity carries the authenticated caller through a request.
//
// The identity lives in the request's context.Context; nothing here is
// process-global, so concurrent requests never observe each other's caller.
package identity

import (
	"context"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// Method records how the caller proved their identity.
type Method string

const (
	MethodBearer Method = "bearer"
	MethodBasic  Method = "basic"
)

// Identity is the resolved caller of the current request.
type Identity struct {
	UserID string
	Email  string
	Role   domain.Role
	Method Method
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// With returns a copy of ctx carrying id.
func With(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Current returns the caller, if the request was authenticated.
func Current(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Require returns the caller or domain.ErrUnauthenticated. Hitting the error
// means a handler that needs an identity was mounted on a public route.
func Require(ctx context.Context) (Identity, error) {
	id, ok := Current(ctx)
	if !ok {
		return Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
