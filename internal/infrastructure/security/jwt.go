package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const defaultIssuer = "travel-planner"

// accessClaims is the wire form of a token. Subject holds the user id.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 tokens with a process-wide secret.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// JWTOption customises a JWTIssuer.
type JWTOption func(*JWTIssuer)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) JWTOption {
	return func(i *JWTIssuer) { i.now = now }
}

// WithIssuer overrides the iss claim.
func WithIssuer(iss string) JWTOption {
	return func(i *JWTIssuer) { i.issuer = iss }
}

func NewJWTIssuer(secret string, ttl time.Duration, opts ...JWTOption) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt: empty signing secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt: token ttl must be positive, got %s", ttl)
	}
	i := &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: defaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue mints a token for the given identity expiring ttl after now.
func (i *JWTIssuer) Issue(userID, email string, role domain.Role) (string, ports.TokenClaims, error) {
	now := i.now()
	claims := accessClaims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", ports.TokenClaims{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, ports.TokenClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// Verify checks signature, issuer and expiry. A token is rejected at its
// exact expiry instant. Any failure other than expiry is ErrTokenInvalid.
func (i *JWTIssuer) Verify(token string) (*ports.TokenClaims, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	out := &ports.TokenClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return out, nil
}
