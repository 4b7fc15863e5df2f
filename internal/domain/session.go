package domain

import (
	"context"
	"time"
)

type Session struct {
	ID         int64
	Token      string
	EmployeeID int64
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// IsActiveAt reports whether the session still authenticates at now. A
// session expiring exactly at now is already expired.
func (s *Session) IsActiveAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

type CreateSessionInput struct {
	Token      string
	EmployeeID int64
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// TokenState is the three-valued answer to "is this token active".
type TokenState int

const (
	TokenUnknown TokenState = iota
	TokenActive
	TokenExpired
)

func (s TokenState) String() string {
	switch s {
	case TokenActive:
		return "active"
	case TokenExpired:
		return "expired"
	default:
		return "unknown"
	}
}

type SessionRepository interface {
	// Replace deletes every session of input.EmployeeID and inserts the new
	// one in a single transaction.
	Replace(ctx context.Context, input CreateSessionInput) (*Session, error)
	FindByToken(ctx context.Context, token string) (*Session, error)
	UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error
	CountActive(ctx context.Context, now time.Time) (int, error)
	DeleteByToken(ctx context.Context, token string) error
}
