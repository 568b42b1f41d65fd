package service

import (
	"context"
	"errors"
	"testing"

	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

func newAuthFixture(t *testing.T, opts ...AuthOption) (*AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	svc, err := NewAuthService(repo, testHasher(t), testIssuer(t), discardLogger, opts...)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc, repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo := newAuthFixture(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pw123", Name: "Alice"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %s", user.Role)
	}
	stored, _, _ := repo.FindByEmail(context.Background(), "alice@example.com")
	if stored.PasswordHash == "pw123" || stored.PasswordHash == "" {
		t.Fatalf("expected password to be hashed, got %q", stored.PasswordHash)
	}
	if stored.Preferences == nil || stored.Preferences.Currency != "USD" {
		t.Fatalf("expected default preferences, got %+v", stored.Preferences)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pw123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "other"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "pw"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "bob@example.com"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newAuthFixture(t)
	issuer := testIssuer(t)

	registered, _ := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pw123", Name: "Alice"})

	res, err := svc.Login(context.Background(), "alice@example.com", "pw123", ports.LoginMeta{})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected token, got empty")
	}
	if res.Identity.ID != registered.ID || res.Identity.Role != domain.RoleUser || res.Identity.Name != "Alice" {
		t.Fatalf("unexpected identity summary: %+v", res.Identity)
	}

	claims, err := issuer.Verify(res.Token)
	if err != nil {
		t.Fatalf("token rejected: %v", err)
	}
	if claims.UserID != registered.ID || claims.Email != "alice@example.com" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass"})

	_, wrongPassword := svc.Login(context.Background(), "dave@example.com", "badpass", ports.LoginMeta{})
	_, unknownUser := svc.Login(context.Background(), "ghost@example.com", "goodpass", ports.LoginMeta{})

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("errors must be identical: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestAuthService_Login_EmailIsCaseSensitive(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pw123"})

	if _, err := svc.Login(context.Background(), "Alice@example.com", "pw123", ports.LoginMeta{}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreErrorIsNotSwallowed(t *testing.T) {
	svc, repo := newAuthFixture(t)
	boom := errors.New("mongo down")
	repo.findErr = boom

	_, err := svc.Login(context.Background(), "alice@example.com", "pw123", ports.LoginMeta{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatal("store error must not be reported as invalid credentials")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	limiter := newStubLimiter(2)
	audit := &recordingAudit{}
	svc, _ := newAuthFixture(t, WithLoginLimiter(limiter), WithAuditRecorder(audit))
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "erin@example.com", Password: "right"})

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "erin@example.com", "wrong", ports.LoginMeta{}); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	if _, err := svc.Login(context.Background(), "erin@example.com", "right", ports.LoginMeta{}); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	types := audit.types()
	if types[len(types)-1] != domain.EventLoginThrottled {
		t.Fatalf("expected throttled event last, got %v", types)
	}
}

func TestAuthService_Login_SuccessResetsLimiter(t *testing.T) {
	limiter := newStubLimiter(3)
	svc, _ := newAuthFixture(t, WithLoginLimiter(limiter))
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "erin@example.com", Password: "right"})

	_, _ = svc.Login(context.Background(), "erin@example.com", "wrong", ports.LoginMeta{})
	if limiter.failures["erin@example.com"] != 1 {
		t.Fatalf("expected one recorded failure, got %d", limiter.failures["erin@example.com"])
	}
	if _, err := svc.Login(context.Background(), "erin@example.com", "right", ports.LoginMeta{}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := limiter.failures["erin@example.com"]; ok {
		t.Fatal("expected failures to be cleared after success")
	}
}

func TestAuthService_Login_LimiterOutageFailsOpen(t *testing.T) {
	limiter := newStubLimiter(1)
	limiter.err = errors.New("redis down")
	svc, _ := newAuthFixture(t, WithLoginLimiter(limiter))
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "erin@example.com", Password: "right"})

	if _, err := svc.Login(context.Background(), "erin@example.com", "right", ports.LoginMeta{}); err != nil {
		t.Fatalf("expected login to proceed when limiter is down, got %v", err)
	}
}

func TestAuthService_AuditTrail(t *testing.T) {
	audit := &recordingAudit{}
	svc, _ := newAuthFixture(t, WithAuditRecorder(audit))

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "frank@example.com", Password: "pw"})
	_, _ = svc.Login(context.Background(), "frank@example.com", "nope", ports.LoginMeta{RemoteIP: "10.0.0.1"})
	_, _ = svc.Login(context.Background(), "frank@example.com", "pw", ports.LoginMeta{RemoteIP: "10.0.0.1"})

	want := []domain.AuthEventType{domain.EventRegistered, domain.EventLoginFailed, domain.EventLoginSucceeded}
	got := audit.types()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if audit.events[1].RemoteIP != "10.0.0.1" {
		t.Fatalf("expected remote ip on failed login event, got %q", audit.events[1].RemoteIP)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "gina@example.com", Password: "pw"})

	user, err := svc.Authenticate(context.Background(), "gina@example.com", "pw", ports.LoginMeta{})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Email != "gina@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Authenticate(context.Background(), "gina@example.com", "", ports.LoginMeta{}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_RecordsRemoteIP(t *testing.T) {
	audit := &recordingAudit{}
	svc, _ := newAuthFixture(t, WithAuditRecorder(audit))

	_, _ = svc.Authenticate(context.Background(), "nobody@example.com", "pw", ports.LoginMeta{RemoteIP: "10.0.0.7"})

	if len(audit.events) != 1 || audit.events[0].RemoteIP != "10.0.0.7" {
		t.Fatalf("expected failed basic login with remote ip, got %+v", audit.events)
	}
}

// countingHasher wraps a real hasher and counts Verify calls.
type countingHasher struct {
	ports.PasswordHasher
	verifies int
}

func (h *countingHasher) Verify(plaintext, hash string) bool {
	h.verifies++
	return h.PasswordHasher.Verify(plaintext, hash)
}

func TestAuthService_Login_UnknownEmailPaysHashCost(t *testing.T) {
	hasher := &countingHasher{PasswordHasher: testHasher(t)}
	repo := newStubUserRepo()
	svc, err := NewAuthService(repo, hasher, testIssuer(t), discardLogger)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "alice@example.com", Password: "pw123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	cases := []struct{ email, password string }{
		{"alice@example.com", "wrong"},
		{"ghost@example.com", "wrong"},
	}
	for _, tc := range cases {
		hasher.verifies = 0
		_, err := svc.Login(context.Background(), tc.email, tc.password, ports.LoginMeta{})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.email, err)
		}
		if hasher.verifies != 1 {
			t.Fatalf("%s: expected exactly one password verification, got %d", tc.email, hasher.verifies)
		}
	}
}

type brokenHasher struct{ ports.PasswordHasher }

func (brokenHasher) Hash(string) (string, error) { return "", errors.New("entropy exhausted") }

func TestNewAuthService_FailsWithoutPlaceholderHash(t *testing.T) {
	if _, err := NewAuthService(newStubUserRepo(), brokenHasher{}, testIssuer(t), discardLogger); err == nil {
		t.Fatal("expected constructor error when the placeholder hash cannot be built")
	}
}
