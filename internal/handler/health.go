package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/recipe-portal/internal/middleware"
	"github.com/deppfellow/recipe-portal/internal/server"
	"github.com/labstack/echo/v4"
)

// pinger is the part of the pool the health check needs.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	db pinger
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}
	if s.DB != nil {
		h.db = s.DB.Pool
	}
	return h
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth returns 200 when every enabled dependency check passes and
// 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	if obs.HealthCheckEnabled("database") {
		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		defer cancel()

		dbStart := time.Now()
		result := checkResult{Status: "healthy"}

		var err error
		if h.db == nil {
			err = errNoDatabase
		} else {
			err = h.db.Ping(ctx)
		}
		result.ResponseTime = time.Since(dbStart).String()

		if err != nil {
			result.Status = "unhealthy"
			// Driver errors stay in the logs.
			result.Error = "database unreachable"
			response.Status = "unhealthy"

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]any{
					"check_type":       "database",
					"operation":        "health_check",
					"error_type":       "database_unhealthy",
					"response_time_ms": time.Since(dbStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
		} else {
			logger.Debug().
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check passed")
		}

		response.Checks["database"] = result
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

var errNoDatabase = errors.New("database not configured")
