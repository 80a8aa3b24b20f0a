package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

type stubIdentityStore struct {
	verifyFn      func(ctx context.Context, username, password string) (bool, error)
	resolveFn     func(ctx context.Context, username string) (string, error)
	getIdentityFn func(ctx context.Context, id string) (*domain.Identity, error)
}

func (s *stubIdentityStore) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	return s.verifyFn(ctx, username, password)
}

func (s *stubIdentityStore) ResolveID(ctx context.Context, username string) (string, error) {
	return s.resolveFn(ctx, username)
}

func (s *stubIdentityStore) GetIdentity(ctx context.Context, id string) (*domain.Identity, error) {
	return s.getIdentityFn(ctx, id)
}

func (s *stubIdentityStore) GetIdentityByUsername(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubIdentityStore) CreateUser(context.Context, ports.NewUserInput) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubIdentityStore) DeleteUser(context.Context, string) (int64, error) {
	return 0, errors.New("not implemented")
}

func (s *stubIdentityStore) ListUsers(context.Context) ([]domain.UserSummary, error) {
	return nil, errors.New("not implemented")
}

func (s *stubIdentityStore) ListIdentities(context.Context) ([]domain.Identity, error) {
	return nil, errors.New("not implemented")
}

func (s *stubIdentityStore) SetRoles(context.Context, string, []string) (int64, error) {
	return 0, errors.New("not implemented")
}

func (s *stubIdentityStore) UpdateProfile(context.Context, ports.ProfileUpdate) (int64, error) {
	return 0, errors.New("not implemented")
}

type countingIssuer struct {
	calls int
	token string
	err   error
}

func (i *countingIssuer) Issue(id, username string, roles []string) (string, error) {
	i.calls++
	return i.token, i.err
}

type memoryLimiter struct {
	mu       sync.Mutex
	failures map[string]int
	max      int
}

func newMemoryLimiter(max int) *memoryLimiter {
	return &memoryLimiter{failures: make(map[string]int), max: max}
}

func (l *memoryLimiter) TooMany(_ context.Context, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[username] >= l.max, nil
}

func (l *memoryLimiter) Failure(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[username]++
	return nil
}

func (l *memoryLimiter) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, username)
	return nil
}

type capturingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *capturingSink) Record(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *capturingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actions := make([]string, 0, len(s.events))
	for _, e := range s.events {
		actions = append(actions, e.Action)
	}
	return actions
}

func testStore() *stubIdentityStore {
	return &stubIdentityStore{
		verifyFn: func(_ context.Context, username, password string) (bool, error) {
			return username == "testuser" && password == "password", nil
		},
		resolveFn: func(_ context.Context, username string) (string, error) {
			if username == "testuser" {
				return "1", nil
			}
			return "", domain.ErrUserNotFound
		},
		getIdentityFn: func(_ context.Context, id string) (*domain.Identity, error) {
			if id == "1" {
				return &domain.Identity{
					ID:       "1",
					Username: "testuser",
					FullName: "Test User",
					Email:    "test@example.com",
					Roles:    []string{"Admin"},
				}, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	store := testStore()
	tokens := NewTokenService("secret", time.Hour)
	sink := &capturingSink{}
	svc := NewAuthService(store, tokens, nil, sink, zerolog.Nop())

	result, err := svc.Login(context.Background(), "testuser", "password")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.UserID != "1" {
		t.Fatalf("expected user id 1, got %q", result.UserID)
	}
	if result.Name != "Test User" {
		t.Fatalf("expected name Test User, got %q", result.Name)
	}
	if result.Token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "1" {
		t.Fatalf("expected token subject 1, got %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "Admin" {
		t.Fatalf("expected roles [Admin], got %v", claims.Roles)
	}

	actions := sink.actions()
	if len(actions) != 1 || actions[0] != domain.AuditLoginSucceeded {
		t.Fatalf("expected login_succeeded audit event, got %v", actions)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	store := testStore()
	issuer := &countingIssuer{token: "unused"}
	svc := NewAuthService(store, issuer, nil, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "testuser", "wrongpass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if issuer.calls != 0 {
		t.Fatalf("token issuer must not be called on invalid credentials, got %d calls", issuer.calls)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	issuer := &countingIssuer{}
	svc := NewAuthService(testStore(), issuer, nil, nil, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", "password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "testuser", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if issuer.calls != 0 {
		t.Fatalf("token issuer must not be called, got %d calls", issuer.calls)
	}
}

func TestAuthService_Login_IdentityVanished(t *testing.T) {
	store := testStore()
	store.getIdentityFn = func(context.Context, string) (*domain.Identity, error) {
		return nil, domain.ErrUserNotFound
	}
	svc := NewAuthService(store, &countingIssuer{}, nil, nil, zerolog.Nop())

	_, err := svc.Login(context.Background(), "testuser", "password")
	if !errors.Is(err, domain.ErrIdentityInconsistent) {
		t.Fatalf("expected ErrIdentityInconsistent, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := testStore()
	limiter := newMemoryLimiter(3)
	tokens := NewTokenService("secret", time.Hour)
	svc := NewAuthService(store, tokens, limiter, nil, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), "testuser", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the correct password is refused.
	if _, err := svc.Login(context.Background(), "testuser", "password"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ResetsCounterOnSuccess(t *testing.T) {
	store := testStore()
	limiter := newMemoryLimiter(3)
	tokens := NewTokenService("secret", time.Hour)
	svc := NewAuthService(store, tokens, limiter, nil, zerolog.Nop())

	for i := 0; i < 2; i++ {
		_, _ = svc.Login(context.Background(), "testuser", "wrongpass")
	}
	if _, err := svc.Login(context.Background(), "testuser", "password"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Counter cleared: two more failures do not trip the limiter.
	for i := 0; i < 2; i++ {
		_, _ = svc.Login(context.Background(), "testuser", "wrongpass")
	}
	if _, err := svc.Login(context.Background(), "testuser", "password"); err != nil {
		t.Fatalf("expected login to succeed after reset, got %v", err)
	}
}
