package domain

import (
	"context"
	"time"
)

const (
	MinColor = 0
	MaxColor = 15
)

type Employee struct {
	ID           int64
	Username     string
	Name         string
	Surname      string
	PasswordHash string
	Color        int
	CreatedAt    time.Time
}

type EmployeeResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Color    int    `json:"color"`
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Username: e.Username,
		Name:     e.Name,
		Surname:  e.Surname,
		Color:    e.Color,
	}
}

type CreateEmployeeInput struct {
	Username     string
	Name         string
	Surname      string
	PasswordHash string
}

type EmployeeRepository interface {
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByUsername(ctx context.Context, username string) (*Employee, error)
	FindBySessionToken(ctx context.Context, token string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindActive(ctx context.Context, now time.Time) ([]Employee, error)
	ExistingUsernames(ctx context.Context, usernames []string) ([]string, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, input CreateEmployeeInput) (*Employee, error)
	SetColor(ctx context.Context, id int64, color int) error
	SetPasswordHash(ctx context.Context, id int64, hash string) error
}
