package api

import (
	"net/http"
	"time"

	"ticketdesk-service/pkg/logger"
	"ticketdesk-service/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// TokenAuth rejects any request whose Authorization header is not the
// configured token. Missing and wrong tokens fail identically; denied
// attempts are logged with the caller's network origin for audit.
func TokenAuth(token string, log logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != token {
			log.Warn("Unauthorized request", "ip", c.ClientIP(), "path", c.Request.URL.Path)
			m.AuthDenied.Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, "Permission denied")
			return
		}
		c.Next()
	}
}

// CORS allows the configured frontend origin. Preflight requests are
// answered with 200 rather than 204 for the benefit of older browsers.
func CORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// RequestDuration records how long each request took to serve
func RequestDuration(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.RequestDuration.Observe(time.Since(start).Seconds())
	}
}
