package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skydash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load, validate and print the configuration as YAML.

The search order is --config, ~/.skydash/config.yaml,
./configs/skydash.yaml, then the built-in defaults.

Examples:
  skydash config > ~/.skydash/config.yaml
  skydash config --config ./my-skydash.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(os.Stdout, string(data))
		return err
	},
}
