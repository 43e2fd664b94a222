package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// templateConfig mirrors fileConfig without the [environment] table, whose
// presence switches off the host probe.
type templateConfig struct {
	SiteID          int64    `toml:"site_id"`
	SessionIDHeader string   `toml:"session_id_header"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
	SinkAddr        string   `toml:"sink_addr"`
	CorsOrigins     []string `toml:"cors_origins"`
}

const environmentTemplate = `
# Uncomment to pin host facilities instead of probing the process.
# Any [environment] table disables the DO_NOT_TRACK probe.
# [environment]
# do_not_track = ""
# global_do_not_track = false
# mutation_observer = true
# crypto = true
# performance = true
# performance_timing = true
`

// Template renders a starter config file for siteID.
func Template(siteID int64) (string, error) {
	cfg := Default()
	raw := templateConfig{
		SiteID:          siteID,
		SessionIDHeader: cfg.SessionIDHeader,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		SinkAddr:        cfg.SinkAddr,
		CorsOrigins:     cfg.CorsOrigins,
	}
	data, err := toml.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("render config template: %w", err)
	}
	return string(data) + environmentTemplate, nil
}

func WriteTemplate(path string, siteID int64, overwrite bool) error {
	template, err := Template(siteID)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}
