package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/api/metrics"
	"github.com/planifikues/travel-planner/internal/api/middleware"
	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgTooManyAttempts    = "Too many failed login attempts, try again later"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenIssuer
	users       ports.UserService
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenIssuer, users ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, users: users}
}

// Register creates a USER account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  middleware.ErrorBody
// @Failure      500   {object}  middleware.ErrorBody
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

// Login exchanges an email and password for a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, ports.LoginMeta{RemoteIP: c.RealIP()})
	if err != nil {
		return loginFailure(c, err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toLoginResponse(res))
}

// Check verifies the credential in the Authorization header. A Basic pair is
// exchanged for a fresh token; a Bearer token is echoed back with the
// identity it asserts.
//
// @Summary      Check credentials
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	cred, _ := middleware.ParseCredential(c.Request())

	switch cred.Scheme {
	case middleware.SchemeBasic:
		res, err := h.authService.Login(c.Request().Context(), cred.Email, cred.Password, ports.LoginMeta{RemoteIP: c.RealIP()})
		if err != nil {
			return loginFailure(c, err)
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		return c.JSON(http.StatusOK, toLoginResponse(res))

	case middleware.SchemeBearer:
		claims, err := h.tokens.Verify(cred.Token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidCredentials})
		}
		user, err := h.users.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidCredentials})
			}
			return err
		}
		return c.JSON(http.StatusOK, loginResponse{
			Message: "Login successful",
			UserID:  user.ID,
			Email:   user.Email,
			Name:    user.Name,
			Role:    user.Role,
			Token:   cred.Token,
		})
	}

	return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidCredentials})
}

// Me returns the caller's identity summary.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  middleware.ErrorBody
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   id.Role,
		Method: string(id.Method),
	})
}

// Logout acknowledges the request. Tokens are stateless and stay valid until
// they expire; the client discards its copy.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := caller(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

func loginFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidCredentials})
	case errors.Is(err, domain.ErrTooManyAttempts):
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": msgTooManyAttempts})
	default:
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}
}
