package router

import (
	"github.com/deppfellow/recipe-portal/internal/handler"
	"github.com/deppfellow/recipe-portal/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API:
// health, metrics, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, metrics *middleware.MetricsMiddleware) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
