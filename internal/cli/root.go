package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/lcdmon/internal/config"
	"github.com/rileyhilliard/lcdmon/internal/logger"
	"github.com/spf13/cobra"
)

// cfg is the resolved configuration, loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lcdmon",
	Short: "Host status dashboard for 20x4 character LCDs",
	Long: `lcdmon samples CPU load, network throughput, memory use and CPU temperature
and draws them as bar gauges on an HD44780 20x4 LCD behind a PCF8574 I2C backpack.

Every flag can also be set through the environment, e.g. LCDMON_BUS=0 or
LCDMON_INTERFACES=eth0,wlan0.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

// loadConfig resolves flags and environment into cfg and applies --debug.
func loadConfig(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}

	cfg = loaded
	logger.SetDebug(cfg.Debug)
	logger.Default().Debug("config: bus %d (fallback %d) at %s, interval %s",
		cfg.Display.Bus, cfg.Display.FallbackBus, cfg.Display.Address, cfg.Interval)
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
