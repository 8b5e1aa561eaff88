package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelblog/auth-service/internal/core/domain"
	"github.com/travelblog/auth-service/internal/core/password"
	"github.com/travelblog/auth-service/internal/core/ports"
	"github.com/travelblog/auth-service/internal/core/token"
)

const defaultTokenTTL = time.Hour

// AuthService implements registration, login, and token verification on top
// of the credential store, the password hasher, and the token codec.
type AuthService struct {
	repo     ports.UserRepository
	hasher   *password.Hasher
	codec    *token.Codec
	tokenTTL time.Duration
	audit    ports.AuditRecorder
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher *password.Hasher,
	codec *token.Codec,
	tokenTTL time.Duration,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		tokenTTL: tokenTTL,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Register creates a new identity with the default role and returns its id.
// The uniqueness pre-check is a fast path only; the store's constraint is
// the arbiter when two registrations race (both paths end in ErrConflict).
func (s *AuthService) Register(ctx context.Context, username, email, pass string) (string, error) {
	if username == "" || email == "" || pass == "" {
		return "", domain.ErrMissingField
	}

	taken, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", fmt.Errorf("register: uniqueness check: %w", err)
	}
	if taken {
		return "", domain.ErrConflict
	}

	digest, err := s.hasher.Hash(pass)
	if err != nil {
		return "", fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:       username,
		Email:          email,
		PasswordDigest: digest,
		Role:           domain.DefaultRole,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", domain.ErrConflict
		}
		return "", fmt.Errorf("register: persist identity: %w", err)
	}

	s.record(ports.AuditEvent{Kind: ports.AuditRegistered, Username: username, SubjectID: created.ID})
	return created.ID, nil
}

// Login verifies credentials and issues a signed session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller: same
// error, and a dummy hash comparison keeps the timing equivalent.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	if username == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.VerifyDummy(pass)
			s.record(ports.AuditEvent{Kind: ports.AuditLoginFailed, Username: username, Reason: "unknown user"})
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(pass, user.PasswordDigest)
	if err != nil {
		// Corrupt digest is a data fault. Log the detail here; the
		// client only ever sees a generic failure.
		s.log.Error().Err(err).Str("username", username).Msg("stored digest unreadable")
		return "", fmt.Errorf("login: verify password: %w", err)
	}
	if !ok {
		s.record(ports.AuditEvent{Kind: ports.AuditLoginFailed, Username: username, SubjectID: user.ID, Reason: "wrong password"})
		return "", domain.ErrInvalidCredentials
	}

	now := s.now().UTC().Truncate(time.Second)
	signed, err := s.codec.Encode(token.Claims{
		SubjectID: user.ID,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	})
	if err != nil {
		return "", fmt.Errorf("login: sign token: %w", err)
	}

	s.record(ports.AuditEvent{Kind: ports.AuditLoginSucceeded, Username: username, SubjectID: user.ID})
	return signed, nil
}

// Verify delegates to the token codec. It needs only the shared secret, so
// any service holding the secret can run the same check without calling
// back here.
func (s *AuthService) Verify(tokenString string) (token.Claims, error) {
	return s.codec.Decode(tokenString)
}

func (s *AuthService) record(event ports.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.At = s.now().UTC()
	s.audit.Record(event)
}
