package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every HTTP request with structured fields. 4xx logs at
// warn, 5xx at error.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := logrus.InfoLevel
		if status >= 500 {
			level = logrus.ErrorLevel
		} else if status >= 400 {
			level = logrus.WarnLevel
		}

		log.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		}).Log(level, "HTTP request")
	}
}
