package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	db     Pinger
	queues []Pinger
}

// NewHealthHandler creates a new HealthHandler. Additional pingers (the
// Redis work queue) must also be reachable for the process to be ready.
func NewHealthHandler(db Pinger, queues ...Pinger) *HealthHandler {
	return &HealthHandler{db: db, queues: queues}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if every dependency is reachable, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()
	for _, p := range append([]Pinger{h.db}, h.queues...) {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
