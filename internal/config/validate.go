package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/lcd"
	"github.com/rileyhilliard/lcdmon/internal/telemetry"
)

// Limits on user-provided values.
const (
	MinInterval = 50 * time.Millisecond
	MaxBus      = 255
	// PCF8574 and PCF8574A backpacks live in 0x20-0x27 and 0x38-0x3f, but any
	// 7-bit address is accepted for clones.
	MinAddress Address = 0x03
	MaxAddress Address = 0x77
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if err := validateDisplay(cfg.Display); err != nil {
		return err
	}
	if err := validateNetwork(cfg.Network); err != nil {
		return err
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s", MinInterval))
	}

	switch cfg.Telemetry.Backend {
	case telemetry.BackendPSUtil, telemetry.BackendProcfs:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown telemetry backend '%s'", cfg.Telemetry.Backend),
			fmt.Sprintf("Use one of: %s, %s", telemetry.BackendPSUtil, telemetry.BackendProcfs))
	}
	if cfg.Telemetry.Backend == telemetry.BackendProcfs && cfg.Telemetry.ProcRoot == "" {
		return errors.New(errors.ErrConfig,
			"The procfs backend needs a filesystem root",
			"Set --proc-root (usually /)")
	}

	return nil
}

func validateDisplay(d DisplayConfig) error {
	if d.Bus < 0 || d.Bus > MaxBus {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("I2C bus %d is out of range", d.Bus),
			"List buses with: ls /dev/i2c-*")
	}
	if d.FallbackBus != lcd.NoFallback && (d.FallbackBus < 0 || d.FallbackBus > MaxBus) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Fallback I2C bus %d is out of range", d.FallbackBus),
			fmt.Sprintf("Use a bus number or %d to disable the fallback", lcd.NoFallback))
	}
	if d.Address < MinAddress || d.Address > MaxAddress {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("I2C address %s is not a valid 7-bit device address", d.Address),
			"Find the backpack with: i2cdetect -y 1")
	}
	return nil
}

func validateNetwork(n NetworkConfig) error {
	if !lcd.Scale(n.Scale).Valid() {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown network scale '%s'", n.Scale),
			fmt.Sprintf("Use one of: %s, %s", lcd.ScaleLog, lcd.ScaleLinear))
	}
	if n.Window <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Peak window %s must be positive", n.Window),
			"Try the default of 60s")
	}
	if n.CounterBits < 8 || n.CounterBits > 64 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Counter width %d bits is out of range", n.CounterBits),
			"Use 32 or 64")
	}

	seen := make(map[string]bool, len(n.Interfaces))
	for _, name := range n.Interfaces {
		if seen[name] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Interface '%s' is listed twice", name),
				"Each interface can only be shown once")
		}
		seen[name] = true
	}

	if len(n.Interfaces) == 0 && len(n.Prefixes) == 0 {
		return errors.New(errors.ErrConfig,
			"No interfaces or discovery prefixes configured",
			"Pass --interfaces eth0 or --iface-prefixes "+strings.Join(DefaultConfig().Network.Prefixes, ","))
	}
	return nil
}
