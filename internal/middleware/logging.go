package middleware

import (
	"time"

	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/gin-gonic/gin"
)

// Logger middleware logs request details
func Logger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			c.ClientIP(),
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
