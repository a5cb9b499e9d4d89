// @title Edu Admin API
// @version 1.0
// @description 管理员注册与仪表盘图表 API
// @BasePath /api/v1

package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// readyTimeout 就绪检查中单个依赖的超时
const readyTimeout = 2 * time.Second

// HealthStatus 健康检查响应
type HealthStatus struct {
	Status string            `json:"status" example:"ok"`
	Module string            `json:"module" example:"admin"`
	Checks map[string]string `json:"checks,omitempty"`
} // @name HealthStatus

// Health 存活检查
// @Summary 存活检查
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status: "ok",
		Module: ServiceName,
	})
}

// Ready 就绪检查：数据库必须可用，Redis 与 NATS 仅在已配置时检查
// @Summary 就绪检查
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /ready [get]
func (s *Server) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if s.db == nil {
		checks["database"] = "not configured"
		healthy = false
	} else if err := s.db.PingContext(ctx); err != nil {
		checks["database"] = "unavailable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if s.redis != nil {
		if err := s.redis.HealthCheck(ctx); err != nil {
			checks["redis"] = "unavailable"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if s.natsHealth != nil {
		if s.natsHealth.IsHealthy() {
			checks["nats"] = "ok"
		} else {
			// 事件发布是尽力而为，NATS 断开不影响就绪
			checks["nats"] = "degraded"
		}
	}

	status := HealthStatus{Status: "ok", Module: ServiceName, Checks: checks}
	if !healthy {
		status.Status = "unavailable"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}
