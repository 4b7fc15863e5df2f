package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/aperturelabs/alms/internal/clock"
	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/password"
)

const (
	minUsernameLength = 2
	maxUsernameLength = 32
	minNameLength     = 2
	maxNameLength     = 255
	minPasswordLength = 8
	maxPasswordLength = 48
)

var (
	ErrUnknownUser       = fmt.Errorf("%w: user does not exist", domain.ErrUnauthorized)
	ErrIncorrectPassword = fmt.Errorf("%w: incorrect password", domain.ErrUnauthorized)
	ErrInvalidColor      = fmt.Errorf("%w: color must be between %d and %d", domain.ErrInvalidInput, domain.MinColor, domain.MaxColor)
)

type SessionIssuer interface {
	IssueToken(ctx context.Context, employeeID int64) (string, error)
	Revoke(ctx context.Context, token string) error
}

type EmployeeService struct {
	repo     domain.EmployeeRepository
	sessions SessionIssuer
	clock    clock.Clock
	logger   *slog.Logger
}

func NewEmployeeService(repo domain.EmployeeRepository, sessions SessionIssuer, clk clock.Clock, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		sessions: sessions,
		clock:    clk,
		logger:   logger,
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	var problems []string

	checkLength := func(field, value string, min, max int) {
		n := utf8.RuneCountInString(value)
		if n < min {
			problems = append(problems, fmt.Sprintf("%s must be at least %d characters long.", field, min))
		}
		if n > max {
			problems = append(problems, fmt.Sprintf("%s must be at most %d characters long.", field, max))
		}
	}

	checkLength("Username", in.Username, minUsernameLength, maxUsernameLength)
	checkLength("Name", in.Name, minNameLength, maxNameLength)
	checkLength("Surname", in.Surname, minNameLength, maxNameLength)
	checkLength("Password", in.Password, minPasswordLength, maxPasswordLength)

	if len(problems) > 0 {
		return &domain.ValidationError{Problems: problems}
	}
	return nil
}

func (s *EmployeeService) Register(ctx context.Context, input RegisterInput) (*domain.Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	employee, err := s.repo.Create(ctx, domain.CreateEmployeeInput{
		Username:     input.Username,
		Name:         input.Name,
		Surname:      input.Surname,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee registered", "employee_id", employee.ID, "username", employee.Username)
	return employee, nil
}

type LoginResult struct {
	Token    string                  `json:"token"`
	Employee domain.EmployeeResponse `json:"employee"`
}

// Login verifies the password and issues a new session, replacing any
// session the employee already had.
func (s *EmployeeService) Login(ctx context.Context, username, plain string) (*LoginResult, error) {
	employee, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	if err != nil {
		return nil, err
	}

	if err := password.Verify(employee.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrIncorrectPassword
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if password.IsLegacy(employee.PasswordHash) {
		s.upgradePasswordHash(ctx, employee.ID, plain)
	}

	token, err := s.sessions.IssueToken(ctx, employee.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Employee: employee.ToResponse()}, nil
}

func (s *EmployeeService) upgradePasswordHash(ctx context.Context, employeeID int64, plain string) {
	hash, err := password.Hash(plain)
	if err == nil {
		err = s.repo.SetPasswordHash(ctx, employeeID, hash)
	}
	if err != nil {
		s.logger.Warn("failed to upgrade legacy password hash", "employee_id", employeeID, "error", err)
		return
	}
	s.logger.Info("legacy password hash upgraded", "employee_id", employeeID)
}

func (s *EmployeeService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *EmployeeService) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *EmployeeService) ListAll(ctx context.Context) ([]domain.EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

func (s *EmployeeService) ListActive(ctx context.Context) ([]domain.EmployeeResponse, error) {
	employees, err := s.repo.FindActive(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

func (s *EmployeeService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *EmployeeService) SetColor(ctx context.Context, employeeID int64, color int) error {
	if color < domain.MinColor || color > domain.MaxColor {
		return ErrInvalidColor
	}
	return s.repo.SetColor(ctx, employeeID, color)
}

func toEmployeeResponses(employees []domain.Employee) []domain.EmployeeResponse {
	responses := make([]domain.EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = employees[i].ToResponse()
	}
	return responses
}
