package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

// timingPlaceholder is hashed once at startup so that logins for unknown
// emails pay the same bcrypt cost as logins with a wrong password.
const timingPlaceholder = "timing-parity-placeholder"

// AuthService implements registration, login and credential checks.
type AuthService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	limiter   ports.LoginLimiter
	audit     ports.AuditRecorder
	logger    zerolog.Logger
	dummyHash string
	now       func() time.Time
}

// AuthOption configures optional collaborators.
type AuthOption func(*AuthService)

func WithLoginLimiter(l ports.LoginLimiter) AuthOption {
	return func(s *AuthService) {
		if l != nil {
			s.limiter = l
		}
	}
}

func WithAuditRecorder(r ports.AuditRecorder) AuthOption {
	return func(s *AuthService) {
		if r != nil {
			s.audit = r
		}
	}
}

// NewAuthService fails when the timing placeholder cannot be hashed, since
// unknown emails would then skip the hash cost.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger, opts ...AuthOption) (*AuthService, error) {
	s := &AuthService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		limiter: noopLimiter{},
		audit:   noopAudit{},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	hash, err := hasher.Hash(timingPlaceholder)
	if err != nil {
		return nil, fmt.Errorf("prepare timing placeholder hash: %w", err)
	}
	s.dummyHash = hash
	return s, nil
}

// Register creates a USER account. Email uniqueness is enforced by the store.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	prefs := domain.DefaultPreferences()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         domain.RoleUser,
		Preferences:  &prefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.EventRegistered, created.Email, created.Role, "")
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the credential pair and mints a token. Unknown emails and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, meta ports.LoginMeta) (*ports.LoginResult, error) {
	user, err := s.checkCredentials(ctx, email, password, meta.RemoteIP)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.record(domain.EventLoginSucceeded, user.Email, user.Role, meta.RemoteIP)
	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		Identity: ports.IdentitySummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}

// Authenticate verifies the credential pair without issuing a token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, meta ports.LoginMeta) (*domain.User, error) {
	return s.checkCredentials(ctx, email, password, meta.RemoteIP)
}

func (s *AuthService) checkCredentials(ctx context.Context, email, password, remoteIP string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	exceeded, err := s.limiter.Exceeded(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login limiter unavailable, continuing")
	} else if exceeded {
		s.record(domain.EventLoginThrottled, email, "", remoteIP)
		return nil, domain.ErrTooManyAttempts
	}

	user, found, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !found {
		_ = s.hasher.Verify(password, s.dummyHash)
		return nil, s.fail(ctx, email, remoteIP)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, s.fail(ctx, email, remoteIP)
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login limiter")
	}
	return user, nil
}

func (s *AuthService) fail(ctx context.Context, email, remoteIP string) error {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
	s.record(domain.EventLoginFailed, email, "", remoteIP)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(typ domain.AuthEventType, email string, role domain.Role, remoteIP string) {
	s.audit.Record(domain.AuthEvent{
		Type:      typ,
		Email:     email,
		Role:      role,
		RemoteIP:  remoteIP,
		Timestamp: s.now().UTC(),
	})
}

type noopLimiter struct{}

func (noopLimiter) Exceeded(context.Context, string) (bool, error) { return false, nil }
func (noopLimiter) RecordFailure(context.Context, string) error    { return nil }
func (noopLimiter) Reset(context.Context, string) error            { return nil }

type noopAudit struct{}

func (noopAudit) Record(domain.AuthEvent) {}
