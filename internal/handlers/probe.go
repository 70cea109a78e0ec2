package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	deps map[string]Pinger
}

// NewProbeHandler creates a new probe handler. deps maps a service name to
// its pinger; nil pingers are skipped so optional services can be passed
// unconditionally.
func NewProbeHandler(deps map[string]Pinger) *ProbeHandler {
	active := make(map[string]Pinger, len(deps))
	for name, p := range deps {
		if p != nil {
			active[name] = p
		}
	}
	return &ProbeHandler{deps: active}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if every configured backing service is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for name, p := range h.deps {
		if err := p.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
