package ports

import (
	"time"

	"github.com/planifikues/travel-planner/internal/core/domain"
)

// PasswordHasher produces salted one-way digests. Verify returns false for
// mismatches and for malformed hashes alike.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenClaims is the identity asserted by a signed token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies stateless identity tokens. Verify returns
// domain.ErrTokenExpired or domain.ErrTokenInvalid.
type TokenIssuer interface {
	Issue(userID, email string, role domain.Role) (token string, claims TokenClaims, err error)
	Verify(token string) (*TokenClaims, error)
}
