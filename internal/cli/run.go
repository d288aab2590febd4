package cli

import (
	"github.com/rileyhilliard/lcdmon/internal/config"
	"github.com/rileyhilliard/lcdmon/internal/lcd"
	"github.com/spf13/cobra"
)

var runPick bool

// runCmd drives the real display
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive the LCD",
	Long: `Open the I2C bus, initialize the LCD and redraw it every interval until
interrupted. On SIGINT or SIGTERM the display and backlight are switched off.

If nothing answers at the address on --bus, --fallback-bus is tried once.

Examples:
  lcdmon run
  lcdmon run --interfaces eth0,wlan0 --net-scale linear
  lcdmon run --bus 0 --fallback-bus -1 --address 0x3f
  lcdmon run --pick`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cfg, runPick, defaultDeps())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runPick, "pick", false, "choose interfaces interactively")
}

// runCommand starts the dashboard on the hardware display. Telemetry and
// display failures before the first frame are returned; display I/O errors
// after initialization are only logged.
func runCommand(cfg *config.Config, pick bool, d deps) error {
	s, err := openSession(cfg, pick, d)
	if err != nil {
		return err
	}

	bus, busNum, err := lcd.OpenBus(d.openBus, cfg.BusConfig(), d.log)
	if err != nil {
		return err
	}
	display := lcd.NewHD44780(bus)
	defer func() {
		if cerr := display.Close(); cerr != nil {
			d.log.Warn("closing i2c-%d: %v", busNum, cerr)
		}
	}()

	if err := display.Init(); err != nil {
		return err
	}
	d.log.Info("display ready on i2c-%d at %s", busNum, cfg.Display.Address)

	return runLoop(s.newLoop(cfg, display, d, nil), d)
}
