package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aperturelabs/alms/internal/clock"
	"github.com/aperturelabs/alms/internal/response"
)

type ActiveSessionCounter interface {
	CountActive(ctx context.Context) (int, error)
}

type EmployeeCounter interface {
	Count(ctx context.Context) (int, error)
}

type StatusData struct {
	Message     string `json:"message"`
	ActiveUsers int    `json:"activeUsers"`
	TotalUsers  int    `json:"totalUsers"`
	Uptime      int64  `json:"uptime"`
	Version     string `json:"version"`
}

type StatusHandler struct {
	sessions  ActiveSessionCounter
	employees EmployeeCounter
	clock     clock.Clock
	startedAt time.Time
	version   string
}

func NewStatusHandler(sessions ActiveSessionCounter, employees EmployeeCounter, clk clock.Clock, version string) *StatusHandler {
	return &StatusHandler{
		sessions:  sessions,
		employees: employees,
		clock:     clk,
		startedAt: clk.Now(),
		version:   version,
	}
}

func (h *StatusHandler) Register(app *fiber.App) {
	app.Get("/", h.Status)
}

// Status godoc
//
//	@Summary	Service status
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	docs.Status
//	@Router		/ [get]
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	active, err := h.sessions.CountActive(c.UserContext())
	if err != nil {
		return err
	}

	total, err := h.employees.Count(c.UserContext())
	if err != nil {
		return err
	}

	return response.OK(c, StatusData{
		Message:     MsgOperational,
		ActiveUsers: active,
		TotalUsers:  total,
		Uptime:      int64(h.clock.Now().Sub(h.startedAt) / time.Second),
		Version:     h.version,
	})
}
