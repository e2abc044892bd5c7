package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"context"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 依赖组件的连通性检查
type Pinger func(ctx context.Context) error

type SystemHandler struct {
	checks map[string]Pinger
}

func NewSystemHandler(checks map[string]Pinger) *SystemHandler {
	return &SystemHandler{checks: checks}
}

func (s *SystemHandler) Ping(c *gin.Context) {
	response.Success(c, "pong")
}

// HealthCheck 任一依赖不可用时返回 503
func (s *SystemHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			log.WarnContext(ctx, "health check failed", "component", name, "err", err)
			response.FailWithData(c, response.ServiceUnavailable, name+" unavailable", dto.HealthDTO{
				Status:    "degraded",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
	}
	response.Success(c, dto.HealthDTO{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
