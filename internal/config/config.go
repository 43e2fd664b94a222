package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/asayer/internal/capability"
	"github.com/danmuck/asayer/internal/transport"
)

// Config is the CLI-side configuration for a tracker client and its sink.
type Config struct {
	SiteID          any
	SessionIDHeader string
	MaxBodyBytes    int64
	SinkAddr        string
	CorsOrigins     []string
	// Environment overrides the host probe when ProbeEnvironment is false.
	Environment      capability.Environment
	ProbeEnvironment bool
}

type fileConfig struct {
	SiteID          any               `toml:"site_id"`
	SessionIDHeader string            `toml:"session_id_header"`
	MaxBodyBytes    int64             `toml:"max_body_bytes"`
	SinkAddr        string            `toml:"sink_addr"`
	CorsOrigins     []string          `toml:"cors_origins"`
	Environment     environmentConfig `toml:"environment"`
}

type environmentConfig struct {
	DoNotTrack        string `toml:"do_not_track"`
	GlobalDoNotTrack  bool   `toml:"global_do_not_track"`
	MutationObserver  bool   `toml:"mutation_observer"`
	Crypto            bool   `toml:"crypto"`
	Performance       bool   `toml:"performance"`
	PerformanceTiming bool   `toml:"performance_timing"`
}

func Default() Config {
	return Config{
		SessionIDHeader:  transport.DefaultSessionIDHeader,
		MaxBodyBytes:     64 << 10,
		SinkAddr:         "127.0.0.1:9400",
		CorsOrigins:      []string{"http://localhost:3000"},
		Environment:      capability.Full(),
		ProbeEnvironment: true,
	}
}

// Load reads path over Default. Keys missing from the file keep defaults;
// an [environment] table switches from probing to the listed facilities.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("site_id") {
		cfg.SiteID = raw.SiteID
	}
	if meta.IsDefined("session_id_header") {
		cfg.SessionIDHeader = strings.TrimSpace(raw.SessionIDHeader)
	}
	if meta.IsDefined("max_body_bytes") {
		cfg.MaxBodyBytes = raw.MaxBodyBytes
	}
	if meta.IsDefined("sink_addr") {
		cfg.SinkAddr = strings.TrimSpace(raw.SinkAddr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("environment") {
		cfg.ProbeEnvironment = false
		env := capability.Full()
		if meta.IsDefined("environment", "do_not_track") {
			env.DoNotTrack = raw.Environment.DoNotTrack
		}
		if meta.IsDefined("environment", "global_do_not_track") {
			env.GlobalDoNotTrack = raw.Environment.GlobalDoNotTrack
		}
		if meta.IsDefined("environment", "mutation_observer") {
			env.MutationObserver = raw.Environment.MutationObserver
		}
		if meta.IsDefined("environment", "crypto") {
			env.Crypto = raw.Environment.Crypto
		}
		if meta.IsDefined("environment", "performance") {
			env.Performance = raw.Environment.Performance
		}
		if meta.IsDefined("environment", "performance_timing") {
			env.PerformanceTiming = raw.Environment.PerformanceTiming
		}
		cfg.Environment = env
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.SiteID == nil {
		return fmt.Errorf("site_id is required")
	}
	switch cfg.SiteID.(type) {
	case int64, string:
	default:
		return fmt.Errorf("site_id must be an integer or string, got %T", cfg.SiteID)
	}
	if strings.TrimSpace(cfg.SessionIDHeader) == "" {
		return fmt.Errorf("session_id_header must not be empty")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	if strings.TrimSpace(cfg.SinkAddr) == "" {
		return fmt.Errorf("sink_addr is required")
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
