package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/identity"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string, _ ports.LoginMeta) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string, string, ports.LoginMeta) (*domain.User, error) {
	return nil, errors.New("not used")
}

type stubTokens struct {
	claims *ports.TokenClaims
	err    error
}

func (s stubTokens) Issue(string, string, domain.Role) (string, ports.TokenClaims, error) {
	return "", ports.TokenClaims{}, errors.New("not used")
}

func (s stubTokens) Verify(string) (*ports.TokenClaims, error) { return s.claims, s.err }

type stubUserService struct {
	ports.UserService
	users map[string]*domain.User
}

func (s stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

var alice = &domain.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: domain.RoleUser, PasswordHash: "$2a$10$hash"}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withCaller(c echo.Context, id identity.Identity) {
	req := c.Request()
	c.SetRequest(req.WithContext(identity.With(req.Context(), id)))
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Password != "pw123" || in.Name != "Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return alice, nil
		},
	}
	h := NewAuthHandler(stub, stubTokens{}, stubUserService{})

	c, rec := newContext(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"pw123","name":"Alice","role":"ADMIN"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatal("response leaks the password hash")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "USER" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Register_DuplicateIsReturned(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub, stubTokens{}, stubUserService{})

	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com","password":"pw123"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail for the error handler, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, stubTokens{}, stubUserService{})

	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"alice@example.com"}`)
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:     "signed.jwt.token",
				ExpiresAt: time.Now().Add(time.Hour),
				Identity:  ports.IdentitySummary{ID: "u1", Email: email, Name: "Alice", Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(stub, stubTokens{}, stubUserService{})

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"pw123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	want := map[string]any{
		"message": "Login successful",
		"userId":  "u1",
		"email":   "alice@example.com",
		"name":    "Alice",
		"role":    "USER",
		"token":   "signed.jwt.token",
	}
	for k, v := range want {
		if resp[k] != v {
			t.Fatalf("%s: expected %v, got %v", k, v, resp[k])
		}
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, msgInvalidCredentials},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, msgTooManyAttempts},
	}
	for _, tc := range cases {
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
				return nil, tc.err
			},
		}
		h := NewAuthHandler(stub, stubTokens{}, stubUserService{})

		c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"x"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		var resp map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp["error"] != tc.body {
			t.Fatalf("%v: unexpected body %v", tc.err, resp)
		}
	}
}

func TestAuthHandler_Login_StoreErrorIsReturned(t *testing.T) {
	boom := errors.New("mongo down")
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, boom
		},
	}
	h := NewAuthHandler(stub, stubTokens{}, stubUserService{})

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"x"}`)
	if err := h.Login(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthHandler_Check_Basic(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "pw123" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.LoginResult{Token: "fresh", Identity: ports.IdentitySummary{ID: "u1", Email: email, Role: domain.RoleUser}}, nil
		},
	}
	h := NewAuthHandler(stub, stubTokens{}, stubUserService{})

	c, rec := newContext(http.MethodGet, "/api/auth/check", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte("alice@example.com:pw123")))
	if err := h.Check(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"token":"fresh"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Check_Bearer(t *testing.T) {
	tokens := stubTokens{claims: &ports.TokenClaims{UserID: "u1", Email: "alice@example.com", Role: domain.RoleUser}}
	h := NewAuthHandler(&stubAuthService{}, tokens, stubUserService{users: map[string]*domain.User{"u1": alice}})

	c, rec := newContext(http.MethodGet, "/api/auth/check", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer abc")
	if err := h.Check(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"Alice"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Check_Rejections(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, stubTokens{err: domain.ErrTokenExpired}, stubUserService{})

	for _, header := range []string{"", "Bearer stale", "Digest x"} {
		c, rec := newContext(http.MethodGet, "/api/auth/check", "")
		if header != "" {
			c.Request().Header.Set(echo.HeaderAuthorization, header)
		}
		if err := h.Check(c); err != nil {
			t.Fatalf("%q: handler error: %v", header, err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, stubTokens{}, stubUserService{users: map[string]*domain.User{"u1": alice}})

	c, rec := newContext(http.MethodGet, "/api/auth/me", "")
	withCaller(c, identity.Identity{UserID: "u1", Email: "alice@example.com", Role: domain.RoleUser, Method: identity.MethodBearer})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["userId"] != "u1" || resp["name"] != "Alice" || resp["method"] != "bearer" {
		t.Fatalf("unexpected body %v", resp)
	}
}

func TestAuthHandler_Me_WithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, stubTokens{}, stubUserService{})

	c, _ := newContext(http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, stubTokens{}, stubUserService{})

	c, rec := newContext(http.MethodPost, "/api/auth/logout", "")
	withCaller(c, identity.Identity{UserID: "u1", Role: domain.RoleUser})
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
