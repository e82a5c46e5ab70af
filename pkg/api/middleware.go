package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger logs one line per request with method, path, status and
// latency. Health and metrics probes are logged at debug to keep the noise
// down.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch c.Request.URL.Path {
		case "/healthz", "/metrics":
			logger.Debug("Request", attrs...)
		default:
			logger.Info("Request", attrs...)
		}
	}
}
