package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/asayer/internal/logging"
	"github.com/danmuck/asayer/internal/server"
	"github.com/danmuck/asayer/internal/tracker"
	"github.com/danmuck/asayer/internal/transport"
	"github.com/spf13/cobra"
)

func demoCmd() *cobra.Command {
	var (
		siteID string
		linger time.Duration
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run every tracker call against a log transport and a local sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(siteID, cmd.Flags().Changed("site-id"))
			if err != nil {
				return err
			}
			logger := logging.Component("asayer")

			sink := server.Appear("127.0.0.1:0", cfg.SessionIDHeader, nil, logging.Component("sink"))
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return fmt.Errorf("listen sink: %w", err)
			}
			go sink.ServeListener(ln)
			defer sink.Shutdown()

			bundle := transport.NewLog(logger).Bundle()
			client, err := tracker.NewClient(bundle, cfg.ClientOptions(logger)...)
			if err != nil {
				return err
			}
			client.Init(cfg.InitOptions())
			fmt.Fprintf(cmd.OutOrStdout(), "state: %s\n", client.State())

			client.Start()
			client.Vars(map[string]any{"plan": "pro", "seats": 3})
			client.Event("demo_started", map[string]any{"linger": linger.String()})
			fmt.Fprintf(cmd.OutOrStdout(), "started: %v id: %s\n", client.Started(), client.ID())

			shout := tracker.Wrap(client, "shout", strings.ToUpper)
			fmt.Fprintf(cmd.OutOrStdout(), "profiled: %s\n", shout("hello"))

			req, err := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/echo", strings.NewReader(`{"demo":true}`))
			if err != nil {
				return err
			}
			resp, err := client.Fetch(req)
			if err != nil {
				return fmt.Errorf("fetch sink: %w", err)
			}
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sink: %s", body)

			time.Sleep(linger)
			return nil
		},
	}
	cmd.Flags().StringVar(&siteID, "site-id", "1", "site identifier used when no config is given")
	cmd.Flags().DurationVar(&linger, "linger", 100*time.Millisecond, "wait for async telemetry before exiting")
	return cmd
}
