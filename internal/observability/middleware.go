package observability

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionKey is the gin context key holding the caller's session identifier.
const SessionKey = "asayer.session_id"

// SessionCorrelation copies the session header into the gin context.
func SessionCorrelation(header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(header)); id != "" {
			c.Set(SessionKey, id)
		}
		c.Next()
	}
}

// SessionID returns the identifier stored by SessionCorrelation.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}

func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		} else if status >= 400 {
			event = logger.Warn()
		}

		if id := SessionID(c); id != "" {
			event = event.Str("session_id", id)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("bytes", c.Writer.Size()).
			Msg("http_request")
	}
}

func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		RecordSinkRequest(c.Request.Method, path, c.Writer.Status(), SessionID(c) != "", time.Since(start))
	}
}
