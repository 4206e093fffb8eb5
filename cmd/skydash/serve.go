package main

import (
	"fmt"
	"net"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skydash/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagStatsAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the skydash SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own run. Achievements are tracked per SSH
user name; run history is shared in one database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.skydash/host_key

Examples:
  skydash serve                           # Listen on :23234 with auto-generated key
  skydash serve --ssh :2222               # Listen on port 2222
  skydash serve --host-key ./my_host_key  # Use specific host key
  skydash serve --db ./skydash.db         # Use specific database
  skydash serve --stats-addr localhost:18066

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagStatsAddr, "stats-addr", "", "Serve runtime stats charts on this address (disabled if empty)")
}

func runServe(_ *cobra.Command, _ []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Game = game

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	if flagStatsAddr != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithAddr(flagStatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		fmt.Printf("Runtime stats on http://%s/debug/statsview\n", flagStatsAddr)
	}

	fmt.Printf("Starting skydash SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
