package router

import (
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/handler"
	"github.com/virilis/backend/internal/middleware"
	"github.com/virilis/backend/static"
)

// registerSystemRoutes registers endpoints outside the business API:
// health, docs UI, the docs assets and Prometheus metrics.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.Files)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	r.GET("/metrics", m.Metrics.Handler())
}
