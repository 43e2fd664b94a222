package config

import (
	"github.com/danmuck/asayer/internal/tracker"
	"github.com/rs/zerolog"
)

// InitOptions is the init argument a client should receive for cfg.
func (cfg Config) InitOptions() tracker.Options {
	return tracker.Options{
		SiteID: cfg.SiteID,
		Fetch:  &tracker.FetchOptions{SessionIDHeader: cfg.SessionIDHeader},
	}
}

func (cfg Config) ClientOptions(logger zerolog.Logger) []tracker.Option {
	opts := []tracker.Option{
		tracker.WithLogger(logger),
		tracker.WithMaxBodyBytes(cfg.MaxBodyBytes),
	}
	if !cfg.ProbeEnvironment {
		opts = append(opts, tracker.WithEnvironment(cfg.Environment))
	}
	return opts
}
