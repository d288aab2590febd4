package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "fallback disabled",
			mutate: func(c *Config) { c.Display.FallbackBus = -1 },
		},
		{
			name:   "explicit interfaces without prefixes",
			mutate: func(c *Config) { c.Network.Interfaces = []string{"eth0"}; c.Network.Prefixes = nil },
		},
		{
			name:   "32-bit counters",
			mutate: func(c *Config) { c.Network.CounterBits = 32 },
		},
		{
			name:    "negative bus",
			mutate:  func(c *Config) { c.Display.Bus = -1 },
			wantErr: "I2C bus -1 is out of range",
		},
		{
			name:    "fallback out of range",
			mutate:  func(c *Config) { c.Display.FallbackBus = 300 },
			wantErr: "Fallback I2C bus 300 is out of range",
		},
		{
			name:    "address too high",
			mutate:  func(c *Config) { c.Display.Address = 0x80 },
			wantErr: "I2C address 0x80 is not a valid 7-bit device address",
		},
		{
			name:    "reserved address",
			mutate:  func(c *Config) { c.Display.Address = 0x00 },
			wantErr: "not a valid 7-bit device address",
		},
		{
			name:    "unknown scale",
			mutate:  func(c *Config) { c.Network.Scale = "cubic" },
			wantErr: "Unknown network scale 'cubic'",
		},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.Network.Window = 0 },
			wantErr: "Peak window 0s must be positive",
		},
		{
			name:    "counter too wide",
			mutate:  func(c *Config) { c.Network.CounterBits = 128 },
			wantErr: "Counter width 128 bits is out of range",
		},
		{
			name:    "duplicate interface",
			mutate:  func(c *Config) { c.Network.Interfaces = []string{"eth0", "eth0"} },
			wantErr: "Interface 'eth0' is listed twice",
		},
		{
			name:    "nothing to show",
			mutate:  func(c *Config) { c.Network.Prefixes = nil },
			wantErr: "No interfaces or discovery prefixes configured",
		},
		{
			name:    "interval too short",
			mutate:  func(c *Config) { c.Interval = time.Millisecond },
			wantErr: "Poll interval 1ms is too short",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Telemetry.Backend = "snmp" },
			wantErr: "Unknown telemetry backend 'snmp'",
		},
		{
			name: "procfs without root",
			mutate: func(c *Config) {
				c.Telemetry.Backend = "procfs"
				c.Telemetry.ProcRoot = ""
			},
			wantErr: "The procfs backend needs a filesystem root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
