// skydash is a side-scrolling flyer for the terminal with persistent achievements.
//
// Usage:
//
//	skydash play             - Play a run in this terminal
//	skydash serve            - Start SSH server for remote play
//	skydash achievements     - List achievements and progress
//	skydash scores           - Show best runs
//	skydash config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.skydash/skydash.db)
//	--config <path>     - Use a custom config YAML
//	--sentry-dsn <dsn>  - Report crashes to sentry
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skydash/internal/config"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagSentryDSN string
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			sentry.CurrentHub().Recover(err)
			sentry.Flush(5 * time.Second)
			panic(err)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
	sentry.Flush(2 * time.Second)
}

var rootCmd = &cobra.Command{
	Use:   "skydash",
	Short: "Skydash - flap through the gaps in your terminal",
	Long: `Skydash is a terminal side-scroller: flap through gaps, grab power-ups
and unlock achievements that persist between runs.

Available commands:
  play          - Play a run in this terminal
  serve         - Start SSH server for remote play
  achievements  - List achievements and progress
  scores        - View best runs
  config        - Print the effective configuration

Examples:
  skydash play
  skydash play --difficulty hard
  skydash serve --ssh :2222
  skydash achievements --all`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagSentryDSN == "" {
			return nil
		}
		if err := sentry.Init(sentry.ClientOptions{Dsn: flagSentryDSN}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skydash/skydash.db", "Path to runs and achievements database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSentryDSN, "sentry-dsn", "", "Sentry DSN for crash reports (disabled if empty)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration selected by --config.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// defaultPlayer names the local player after the OS user.
func defaultPlayer() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(env); u != "" {
			return u
		}
	}
	return "player"
}
