package main

import (
	"github.com/danmuck/asayer/internal/observability"
	"github.com/danmuck/asayer/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func sinkCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "sink",
		Short: "Serve the echo sink with session correlation and /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("0", false)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.SinkAddr = addr
			}
			logger := observability.InitLogger("sink")
			s := server.Appear(cfg.SinkAddr, cfg.SessionIDHeader, cfg.CorsOrigins, logger)
			log.Info().Str("addr", s.Addr).Str("header", s.Header).Msg("sink started")
			return s.Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides sink_addr)")
	return cmd
}
