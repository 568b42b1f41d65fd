package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/api/metrics"
	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/identity"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const (
	msgUnauthorized = "Full authentication is required to access this resource"
	msgForbidden    = "Access is denied"
	msgThrottled    = "Too many failed login attempts, try again later"
)

// CredentialChecker verifies an email/password pair.
type CredentialChecker interface {
	Authenticate(ctx context.Context, email, password string, meta ports.LoginMeta) (*domain.User, error)
}

// GuardConfig wires the access guard.
type GuardConfig struct {
	Policy *Policy
	Tokens ports.TokenIssuer
	// Credentials verifies HTTP Basic pairs. Basic is refused when nil or
	// when BasicEnabled is false.
	Credentials  CredentialChecker
	BasicEnabled bool
	Audit        ports.AuditRecorder
	Logger       zerolog.Logger
}

// Guard resolves the caller of every request and enforces the route policy.
// On success the Identity is attached to the request context; on failure the
// request is answered with an ErrorBody and the handler never runs.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rule := cfg.Policy.Match(req.URL.Path)
			if rule.Access == Public {
				return next(c)
			}

			id, status, reason, err := cfg.resolve(c)
			if err != nil {
				return err
			}
			if status != 0 {
				metrics.GuardRejectionsTotal.WithLabelValues(reason).Inc()
				msg := msgUnauthorized
				if status == http.StatusTooManyRequests {
					msg = msgThrottled
				}
				return WriteError(c, status, msg)
			}

			if rule.Access == RoleRestricted && id.Role != rule.Role {
				metrics.GuardRejectionsTotal.WithLabelValues("forbidden").Inc()
				cfg.Logger.Warn().
					Str("user_id", id.UserID).
					Str("role", id.Role.String()).
					Str("required_role", rule.Role.String()).
					Str("path", req.URL.Path).
					Msg("access denied")
				if cfg.Audit != nil {
					cfg.Audit.Record(domain.AuthEvent{
						Type:      domain.EventAccessDenied,
						Email:     id.Email,
						Role:      id.Role,
						Path:      req.URL.Path,
						RemoteIP:  c.RealIP(),
						Timestamp: time.Now().UTC(),
					})
				}
				return WriteError(c, http.StatusForbidden, msgForbidden)
			}

			c.SetRequest(req.WithContext(identity.With(req.Context(), id)))
			return next(c)
		}
	}
}

// resolve returns either an identity, a rejection (status and metric reason),
// or an unexpected error that belongs to the HTTP error handler.
func (cfg GuardConfig) resolve(c echo.Context) (identity.Identity, int, string, error) {
	cred, present := ParseCredential(c.Request())
	if !present {
		return identity.Identity{}, http.StatusUnauthorized, "missing_credential", nil
	}

	switch cred.Scheme {
	case SchemeBearer:
		claims, err := cfg.Tokens.Verify(cred.Token)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, domain.ErrTokenExpired) {
				reason = "expired_token"
			}
			return identity.Identity{}, http.StatusUnauthorized, reason, nil
		}
		return identity.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
			Method: identity.MethodBearer,
		}, 0, "", nil

	case SchemeBasic:
		if !cfg.BasicEnabled || cfg.Credentials == nil {
			return identity.Identity{}, http.StatusUnauthorized, "basic_disabled", nil
		}
		user, err := cfg.Credentials.Authenticate(c.Request().Context(), cred.Email, cred.Password, ports.LoginMeta{RemoteIP: c.RealIP()})
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return identity.Identity{}, http.StatusUnauthorized, "invalid_basic", nil
		case errors.Is(err, domain.ErrTooManyAttempts):
			return identity.Identity{}, http.StatusTooManyRequests, "throttled", nil
		case err != nil:
			return identity.Identity{}, 0, "", err
		}
		return identity.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Method: identity.MethodBasic,
		}, 0, "", nil
	}

	return identity.Identity{}, http.StatusUnauthorized, "malformed_credential", nil
}
