package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aperturelabs/alms/internal/response"
)

const healthPingTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthData struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type HealthHandler struct {
	db      Pinger
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
}

// Health godoc
//
//	@Summary	Liveness and database reachability
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	docs.Health
//	@Failure	503	{object}	docs.Health
//	@Router		/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()

	data := HealthData{
		Status:    "healthy",
		Database:  "up",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}

	if err := h.db.PingContext(ctx); err != nil {
		data.Status = "degraded"
		data.Database = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Envelope{
			Success: false,
			Data:    data,
		})
	}

	return response.OK(c, data)
}
