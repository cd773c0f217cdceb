package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Logger пишет строку лога на каждый запрос вместе с request_id
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"ip":         c.ClientIP(),
		})

		switch {
		case c.Writer.Status() >= 500:
			entry.Error("HTTP запрос")
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Warn("HTTP запрос")
		default:
			entry.Info("HTTP запрос")
		}
	}
}
