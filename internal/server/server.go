// Package server runs the sink: a small HTTP endpoint that fetch-intercepted
// requests can target. It correlates the session header into its logs and
// metrics and serves /metrics.
package server

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danmuck/asayer/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Sink struct {
	Addr     string    `json:"addr"`
	Header   string    `json:"header"`
	Appeared time.Time `json:"appeared"`

	router *gin.Engine
	srv    *http.Server
}

// Appear builds a sink whose CORS policy admits the session header.
func Appear(addr, header string, corsOrigins []string, logger zerolog.Logger) *Sink {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.SessionCorrelation(header))
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetricsMiddleware())
	if origins := normalizeOrigins(corsOrigins); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders: []string{"Origin", "Content-Type", header},
			MaxAge:       12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Sink{
		Addr:     addr,
		Header:   header,
		Appeared: time.Now(),
		router:   r,
		srv:      &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second},
	}
	s.registerRoutes()
	return s
}

func (s *Sink) Handler() http.Handler {
	return s.router
}

// Serve listens on s.Addr until Shutdown.
func (s *Sink) Serve() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ln)
}

func (s *Sink) ServeListener(ln net.Listener) error {
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Sink) Shutdown() error {
	return s.srv.Close()
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		if origin == "" {
			continue
		}
		out = append(out, origin)
	}
	return out
}
