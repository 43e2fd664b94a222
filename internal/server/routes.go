package server

import (
	"io"
	"net/http"
	"time"

	"github.com/danmuck/asayer/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Echo is the body returned by /echo.
type Echo struct {
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Body      string `json:"body"`
}

func (s *Sink) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": "asayer-sink",
			"header":  s.Header,
		})
	})

	s.router.Any("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, Echo{
			SessionID: observability.SessionID(c),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Body:      string(body),
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
