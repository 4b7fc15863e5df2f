package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aperturelabs/alms/internal/clock"
	"github.com/aperturelabs/alms/internal/crypto"
	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/metrics"
)

const DefaultTokenValidity = 10 * time.Minute

// TokenGenerator produces new session token strings at the given instant.
type TokenGenerator func(now time.Time) (string, error)

// SessionService tracks at most one active token per employee. Expiry is
// evaluated lazily against the clock; nothing sweeps expired rows.
type SessionService struct {
	repo     domain.SessionRepository
	clock    clock.Clock
	validity time.Duration
	generate TokenGenerator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type SessionServiceConfig struct {
	Repo      domain.SessionRepository
	Clock     clock.Clock
	Validity  time.Duration
	Generator TokenGenerator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func NewSessionService(cfg SessionServiceConfig) *SessionService {
	s := &SessionService{
		repo:     cfg.Repo,
		clock:    cfg.Clock,
		validity: cfg.Validity,
		generate: cfg.Generator,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}

	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.validity <= 0 {
		s.validity = DefaultTokenValidity
	}
	if s.generate == nil {
		s.generate = crypto.GenerateSessionTokenAt
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

func (s *SessionService) Validity() time.Duration {
	return s.validity
}

// IssueToken replaces any session of employeeID with a fresh token. The
// replacement is all-or-nothing: on failure the previous token stays valid.
func (s *SessionService) IssueToken(ctx context.Context, employeeID int64) (string, error) {
	now := s.clock.Now()

	token, err := s.generate(now)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	_, err = s.repo.Replace(ctx, domain.CreateSessionInput{
		Token:      token,
		EmployeeID: employeeID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.validity),
	})
	if err != nil {
		return "", fmt.Errorf("%w: issue session for employee %d: %v", domain.ErrPersistence, employeeID, err)
	}

	s.metrics.SessionIssued()
	s.logger.Debug("session issued", "employee_id", employeeID)

	return token, nil
}

// IsActive distinguishes a token that never existed (TokenUnknown) from one
// that has lapsed (TokenExpired). A token is active while now < expiresAt.
func (s *SessionService) IsActive(ctx context.Context, token string) (domain.TokenState, error) {
	session, err := s.repo.FindByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.TokenUnknown, nil
	}
	if err != nil {
		return domain.TokenUnknown, fmt.Errorf("find session: %w", err)
	}

	if session.IsActiveAt(s.clock.Now()) {
		return domain.TokenActive, nil
	}
	return domain.TokenExpired, nil
}

// Refresh slides the expiry of token to now + validity. Unknown tokens are
// ignored.
func (s *SessionService) Refresh(ctx context.Context, token string) error {
	if err := s.repo.UpdateExpiry(ctx, token, s.clock.Now().Add(s.validity)); err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	return nil
}

func (s *SessionService) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx, s.clock.Now())
}

func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
