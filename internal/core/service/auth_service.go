package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/platformsec/identity-service/internal/core/domain"
	"github.com/platformsec/identity-service/internal/core/ports"
)

// AuthService implements the login flow: credential verification, identity
// lookup, token issuance.
type AuthService struct {
	store   ports.IdentityStore
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	audit   ports.AuditSink
	logger  zerolog.Logger
}

func NewAuthService(
	store ports.IdentityStore,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{store: store, tokens: tokens, limiter: limiter, audit: audit, logger: logger}
}

// Login verifies the credentials against the identity store and mints a
// token carrying the identity's current role set. Credential failures
// collapse into domain.ErrInvalidCredentials without disclosing which field
// was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("attempt limiter unavailable, allowing login")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	valid, err := s.store.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !valid {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	id, err := s.store.ResolveID(ctx, username)
	if err != nil {
		return nil, asInconsistency(err)
	}

	identity, err := s.store.GetIdentity(ctx, id)
	if err != nil {
		return nil, asInconsistency(err)
	}

	token, err := s.tokens.Issue(identity.ID, identity.Username, identity.Roles)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset attempt counter")
		}
	}
	s.record(domain.AuditEvent{Actor: identity.Username, Action: domain.AuditLoginSucceeded})

	s.logger.Info().Str("username", identity.Username).Msg("login succeeded")

	return &ports.AuthResult{
		UserID: identity.ID,
		Name:   identity.FullName,
		Token:  token,
	}, nil
}

// asInconsistency upgrades a not-found during post-verification lookup into
// a server fault: the identity existed when the credentials were checked.
func asInconsistency(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrIdentityInconsistent
	}
	return err
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter != nil {
		if err := s.limiter.Failure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record login attempt")
		}
	}
	s.record(domain.AuditEvent{Actor: username, Action: domain.AuditLoginFailed})
	s.logger.Info().Str("username", username).Msg("login rejected")
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	s.audit.Record(event)
}
