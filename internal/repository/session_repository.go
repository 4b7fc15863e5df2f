package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aperturelabs/alms/internal/domain"
)

type PostgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Replace(ctx context.Context, input domain.CreateSessionInput) (*domain.Session, error) {
	var session domain.Session

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_tokens WHERE employee_id = $1`, input.EmployeeID); err != nil {
			return err
		}

		query := `
			INSERT INTO session_tokens (token, employee_id, datetime_created, datetime_expires)
			VALUES ($1, $2, $3, $4)
			RETURNING id, token, employee_id, datetime_created, datetime_expires
		`

		return tx.QueryRowContext(ctx, query,
			input.Token,
			input.EmployeeID,
			input.CreatedAt,
			input.ExpiresAt,
		).Scan(
			&session.ID,
			&session.Token,
			&session.EmployeeID,
			&session.CreatedAt,
			&session.ExpiresAt,
		)
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// FindByToken returns the row whether or not it has expired; callers decide.
func (r *PostgresSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT id, token, employee_id, datetime_created, datetime_expires
		FROM session_tokens
		WHERE token = $1
	`

	var session domain.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID,
		&session.Token,
		&session.EmployeeID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *PostgresSessionRepository) UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	query := `UPDATE session_tokens SET datetime_expires = $1 WHERE token = $2`

	_, err := r.db.ExecContext(ctx, query, expiresAt, token)
	return err
}

func (r *PostgresSessionRepository) CountActive(ctx context.Context, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM session_tokens WHERE datetime_expires > $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *PostgresSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM session_tokens WHERE token = $1`

	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

var _ domain.SessionRepository = (*PostgresSessionRepository)(nil)
