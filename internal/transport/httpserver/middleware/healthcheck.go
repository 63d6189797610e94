// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
)

// readinessTimeout bounds the backend ping behind /readyz.
const readinessTimeout = 2 * time.Second

// Pinger reports whether the storage backend is reachable.
// Implementations: internal/infra/store.Store
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHealthCheck creates a Fiber healthcheck middleware with Kubernetes-style endpoints.
//
// Endpoints:
//   - GET /livez  - Liveness probe (app is running)
//   - GET /readyz - Readiness probe (storage backend reachable)
//
// This middleware should be registered BEFORE other routes.
func NewHealthCheck(p Pinger) fiber.Handler {
	return healthcheck.New(healthcheck.Config{
		LivenessEndpoint: "/livez",
		LivenessProbe: func(_ *fiber.Ctx) bool {
			return true
		},

		ReadinessEndpoint: "/readyz",
		ReadinessProbe: func(_ *fiber.Ctx) bool {
			if p == nil {
				return false
			}
			ctx, cancel := context.WithTimeout(context.Background(), readinessTimeout)
			defer cancel()

			return p.Ping(ctx) == nil
		},
	})
}
