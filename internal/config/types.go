package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rileyhilliard/lcdmon/internal/lcd"
	"github.com/rileyhilliard/lcdmon/internal/monitor"
	"github.com/rileyhilliard/lcdmon/internal/telemetry"
)

// Config is the resolved startup configuration of lcdmon.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Network   NetworkConfig   `yaml:"network"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Interval is the pause between polls.
	Interval time.Duration `yaml:"interval"`

	Debug bool `yaml:"debug"`
}

// DisplayConfig selects the I2C bus and backpack address of the LCD.
type DisplayConfig struct {
	Bus         int     `yaml:"bus"`
	FallbackBus int     `yaml:"fallback_bus"` // lcd.NoFallback to disable
	Address     Address `yaml:"address"`
}

// NetworkConfig controls which interfaces are shown and how.
type NetworkConfig struct {
	// Interfaces to show, in display order. Empty means discover by prefix.
	Interfaces []string `yaml:"interfaces"`

	// Prefixes used for discovery when Interfaces is empty.
	Prefixes []string `yaml:"prefixes"`

	// Window is how far back the peak readout looks.
	Window time.Duration `yaml:"window"`

	// Scale is "log" or "linear".
	Scale string `yaml:"scale"`

	// CounterBits is the width of the kernel byte counters (32 on some 32-bit kernels).
	CounterBits int `yaml:"counter_bits"`
}

// TelemetryConfig selects the telemetry backend.
type TelemetryConfig struct {
	Backend    string `yaml:"backend"`
	ProcRoot   string `yaml:"proc_root"`
	TempSensor string `yaml:"temp_sensor"`
}

// Address is an I2C slave address, printed in hex.
type Address uint16

// ParseAddress accepts decimal, 0x-prefixed hex and 0o/0-prefixed octal.
func ParseAddress(s string) (Address, error) {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return Address(n), nil
}

func (a Address) String() string {
	return fmt.Sprintf("0x%02x", uint16(a))
}

// MarshalYAML prints the address in hex.
func (a Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Bus:         1,
			FallbackBus: 2,
			Address:     Address(lcd.DefaultAddress),
		},
		Network: NetworkConfig{
			Prefixes:    []string{"eth", "wlan"},
			Window:      monitor.DefaultWindow,
			Scale:       string(lcd.ScaleLog),
			CounterBits: 64,
		},
		Telemetry: TelemetryConfig{
			Backend:  telemetry.BackendPSUtil,
			ProcRoot: "/",
		},
		Interval: monitor.DefaultInterval,
	}
}

// BusConfig returns the bus selection for lcd.OpenBus.
func (c *Config) BusConfig() lcd.BusConfig {
	return lcd.BusConfig{
		Bus:      c.Display.Bus,
		Fallback: c.Display.FallbackBus,
		Address:  uint16(c.Display.Address),
	}
}

// Layout returns the gauge layout.
func (c *Config) Layout() lcd.Layout {
	layout := lcd.DefaultLayout()
	layout.Scale = lcd.Scale(c.Network.Scale)
	return layout
}

// TelemetryOptions returns the options for telemetry.New.
func (c *Config) TelemetryOptions() telemetry.Options {
	return telemetry.Options{
		Backend:    c.Telemetry.Backend,
		ProcRoot:   c.Telemetry.ProcRoot,
		TempSensor: c.Telemetry.TempSensor,
	}
}

// SamplerConfig returns the sampler settings for the given interfaces.
func (c *Config) SamplerConfig(interfaces []string) monitor.SamplerConfig {
	return monitor.SamplerConfig{
		Interfaces:  interfaces,
		Window:      c.Network.Window,
		CounterBits: c.Network.CounterBits,
	}
}
