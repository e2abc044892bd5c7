package middleware

import (
	"Inkstone/internal/pkg/metrics"
	"time"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 按路由模板统计请求数与耗时
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordRequest(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
