// Package cli implements the lcdmon command-line interface.
//
// Every command is a cobra.Command whose RunE delegates to a plain function
// taking the resolved *config.Config and a deps value, so the commands can be
// exercised in tests with fake telemetry and a fake I2C bus.
//
// # Command Structure
//
//	lcdmon run      - drive the HD44780 LCD over I2C
//	lcdmon demo     - the same dashboard on a simulated display in the terminal
//	lcdmon config   - print the resolved configuration as YAML
//	lcdmon version  - print build information
//
// # Startup
//
// run and demo share the same startup sequence:
//
//  1. Resolve flags and LCDMON_* environment variables (root PersistentPreRunE)
//  2. Open the telemetry backend and count CPU cores
//  3. Settle the interfaces: --interfaces, or discovery by prefix capped to
//     what fits beside the CPU gauges, optionally refined with --pick
//  4. run only: open the I2C bus (with fallback) and initialize the LCD
//  5. Take the first telemetry reading, then enter the poll loop
//
// Any failure up to step 5 aborts with a structured error.
//
// # Flag Handling
//
// Configuration flags are persistent flags on the root command and apply to
// every subcommand. Command-specific flags (--pick, --frames) live on their
// command.
package cli
