package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger логирует каждый запрос: метод, путь, статус, длительность, client IP.
// 5xx пишутся уровнем Error, 4xx: Warn.
func RequestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		path += "?" + raw
	}

	c.Next()

	status := c.Writer.Status()
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	slog.Log(c.Request.Context(), level, "request",
		"method", c.Request.Method,
		"path", path,
		"status", status,
		"ip", c.ClientIP(),
		"latency_ms", time.Since(start).Milliseconds(),
	)
}
