package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/metrics"
)

type AuthStatus int

const (
	AuthOK AuthStatus = iota
	AuthTokenMissing
	AuthTokenInvalid
	AuthTokenExpired
)

func (s AuthStatus) String() string {
	switch s {
	case AuthOK:
		return "AUTHENTICATED"
	case AuthTokenMissing:
		return "TOKEN_MISSING"
	case AuthTokenInvalid:
		return "TOKEN_BAD"
	case AuthTokenExpired:
		return "TOKEN_EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// AuthOutcome is the terminal state of one authentication attempt. Employee
// is set only when Status is AuthOK.
type AuthOutcome struct {
	Status   AuthStatus
	Employee *domain.Employee
}

func (o AuthOutcome) Authenticated() bool {
	return o.Status == AuthOK && o.Employee != nil
}

type SessionChecker interface {
	IsActive(ctx context.Context, token string) (domain.TokenState, error)
	Refresh(ctx context.Context, token string) error
}

type PrincipalLookup interface {
	FindBySessionToken(ctx context.Context, token string) (*domain.Employee, error)
}

type Authenticator struct {
	sessions   SessionChecker
	principals PrincipalLookup
	metrics    *metrics.Metrics
}

func NewAuthenticator(sessions SessionChecker, principals PrincipalLookup, m *metrics.Metrics) *Authenticator {
	return &Authenticator{
		sessions:   sessions,
		principals: principals,
		metrics:    m,
	}
}

// Authenticate resolves a bearer token to an employee. Rejections are
// reported through the outcome; the error is reserved for infrastructure
// failures. A successful check refreshes the session exactly once before the
// employee is looked up.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (AuthOutcome, error) {
	outcome, err := a.authenticate(ctx, token)
	if err == nil {
		a.metrics.ObserveAuth(outcome.Status.String())
	}
	return outcome, err
}

func (a *Authenticator) authenticate(ctx context.Context, token string) (AuthOutcome, error) {
	if token == "" {
		return AuthOutcome{Status: AuthTokenMissing}, nil
	}

	state, err := a.sessions.IsActive(ctx, token)
	if err != nil {
		return AuthOutcome{}, err
	}

	switch state {
	case domain.TokenUnknown:
		return AuthOutcome{Status: AuthTokenInvalid}, nil
	case domain.TokenExpired:
		return AuthOutcome{Status: AuthTokenExpired}, nil
	}

	if err := a.sessions.Refresh(ctx, token); err != nil {
		return AuthOutcome{}, err
	}

	employee, err := a.principals.FindBySessionToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		// replaced by a concurrent login between the check and the lookup
		return AuthOutcome{Status: AuthTokenInvalid}, nil
	}
	if err != nil {
		return AuthOutcome{}, fmt.Errorf("resolve principal: %w", err)
	}

	return AuthOutcome{Status: AuthOK, Employee: employee}, nil
}
