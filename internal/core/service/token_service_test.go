package service

import (
	"errors"
	"testing"
	"time"

	"github.com/platformsec/identity-service/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("1", "testuser", []string{"Admin", "viewer"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "1" {
		t.Fatalf("expected subject 1, got %q", claims.Subject)
	}
	if claims.Username != "testuser" {
		t.Fatalf("expected username testuser, got %q", claims.Username)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "Admin" || claims.Roles[1] != "viewer" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue("1", "testuser", []string{"Admin"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Just before expiry the token still verifies.
	svc.now = func() time.Time { return issued.Add(time.Hour - time.Minute) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	// Past the configured lifetime it must be rejected as unauthenticated.
	svc.now = func() time.Time { return issued.Add(time.Hour + time.Minute) }
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("1", "testuser", []string{"Admin"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for wrong key, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated for %q, got %v", token, err)
		}
	}
}
