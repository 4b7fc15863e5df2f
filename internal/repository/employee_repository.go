package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aperturelabs/alms/internal/domain"
)

const employeeColumns = `e.id, e.username, e.name, e.surname, e.password, e.color, e.datetime_created`

type PostgresEmployeeRepository struct {
	db *sql.DB
}

func NewPostgresEmployeeRepository(db *sql.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.Username,
		&e.Name,
		&e.Surname,
		&e.PasswordHash,
		&e.Color,
		&e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresEmployeeRepository) queryEmployees(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.id = $1`
	return scanEmployee(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresEmployeeRepository) FindByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.username = $1`
	return scanEmployee(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresEmployeeRepository) FindBySessionToken(ctx context.Context, token string) (*domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		INNER JOIN session_tokens st ON st.employee_id = e.id
		WHERE st.token = $1
	`
	return scanEmployee(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresEmployeeRepository) FindAll(ctx context.Context) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees e ORDER BY e.username`
	return r.queryEmployees(ctx, query)
}

func (r *PostgresEmployeeRepository) FindActive(ctx context.Context, now time.Time) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		INNER JOIN session_tokens st ON st.employee_id = e.id
		WHERE st.datetime_expires > $1
		ORDER BY e.username
	`
	return r.queryEmployees(ctx, query, now)
}

func (r *PostgresEmployeeRepository) ExistingUsernames(ctx context.Context, usernames []string) ([]string, error) {
	if len(usernames) == 0 {
		return []string{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT username FROM employees WHERE username = ANY($1)`, usernames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		existing = append(existing, username)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return existing, nil
}

func (r *PostgresEmployeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresEmployeeRepository) Create(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error) {
	query := `
		INSERT INTO employees (username, name, surname, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, name, surname, password, color, datetime_created
	`

	employee, err := scanEmployee(r.db.QueryRowContext(ctx, query,
		input.Username,
		input.Name,
		input.Surname,
		input.PasswordHash,
	))
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return employee, err
}

func (r *PostgresEmployeeRepository) SetColor(ctx context.Context, id int64, color int) error {
	return r.updateOne(ctx, `UPDATE employees SET color = $1 WHERE id = $2`, color, id)
}

func (r *PostgresEmployeeRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	return r.updateOne(ctx, `UPDATE employees SET password = $1 WHERE id = $2`, hash, id)
}

func (r *PostgresEmployeeRepository) updateOne(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

var _ domain.EmployeeRepository = (*PostgresEmployeeRepository)(nil)
