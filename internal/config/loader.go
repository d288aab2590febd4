package config

import (
	"strings"

	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. LCDMON_FALLBACK_BUS.
const EnvPrefix = "LCDMON"

// Setting keys. Each one is also the flag name and, upper-cased with dashes
// turned into underscores, the environment variable suffix.
const (
	KeyBus           = "bus"
	KeyFallbackBus   = "fallback-bus"
	KeyAddress       = "address"
	KeyInterfaces    = "interfaces"
	KeyIfacePrefixes = "iface-prefixes"
	KeyInterval      = "interval"
	KeyWindow        = "window"
	KeyNetScale      = "net-scale"
	KeyCounterBits   = "counter-bits"
	KeyTelemetry     = "telemetry"
	KeyProcRoot      = "proc-root"
	KeyTempSensor    = "temp-sensor"
	KeyDebug         = "debug"
)

// New returns a viper instance with defaults and environment overrides set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults mirrors DefaultConfig into viper.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault(KeyBus, def.Display.Bus)
	v.SetDefault(KeyFallbackBus, def.Display.FallbackBus)
	v.SetDefault(KeyAddress, def.Display.Address.String())
	v.SetDefault(KeyInterfaces, []string{})
	v.SetDefault(KeyIfacePrefixes, def.Network.Prefixes)
	v.SetDefault(KeyInterval, def.Interval)
	v.SetDefault(KeyWindow, def.Network.Window)
	v.SetDefault(KeyNetScale, def.Network.Scale)
	v.SetDefault(KeyCounterBits, def.Network.CounterBits)
	v.SetDefault(KeyTelemetry, def.Telemetry.Backend)
	v.SetDefault(KeyProcRoot, def.Telemetry.ProcRoot)
	v.SetDefault(KeyTempSensor, def.Telemetry.TempSensor)
	v.SetDefault(KeyDebug, def.Debug)
}

// RegisterFlags adds every setting as a flag. Defaults shown in help come
// from DefaultConfig.
func RegisterFlags(flags *pflag.FlagSet) {
	def := DefaultConfig()
	flags.Int(KeyBus, def.Display.Bus, "I2C bus number (/dev/i2c-N)")
	flags.Int(KeyFallbackBus, def.Display.FallbackBus, "bus to try when nothing answers on --bus (-1 to disable)")
	flags.String(KeyAddress, def.Display.Address.String(), "I2C address of the LCD backpack")
	flags.StringSlice(KeyInterfaces, nil, "network interfaces to show, in order (default: discover by prefix)")
	flags.StringSlice(KeyIfacePrefixes, def.Network.Prefixes, "interface name prefixes used for discovery")
	flags.Duration(KeyInterval, def.Interval, "time between polls")
	flags.Duration(KeyWindow, def.Network.Window, "how far back the peak readout looks")
	flags.String(KeyNetScale, def.Network.Scale, "network gauge scale: log or linear")
	flags.Int(KeyCounterBits, def.Network.CounterBits, "width of the interface byte counters")
	flags.String(KeyTelemetry, def.Telemetry.Backend, "telemetry backend: psutil or procfs")
	flags.String(KeyProcRoot, def.Telemetry.ProcRoot, "filesystem root for the procfs backend")
	flags.String(KeyTempSensor, def.Telemetry.TempSensor, "temperature sensor or thermal zone type (default: first CPU sensor)")
	flags.Bool(KeyDebug, def.Debug, "enable debug logging")
}

// BindFlags makes explicitly set flags take precedence over the environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to bind command line flags", "")
	}
	return nil
}

// Load resolves flags, environment and defaults into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	addr, err := ParseAddress(v.GetString(KeyAddress))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid I2C address '"+v.GetString(KeyAddress)+"'",
			"Use a value like 0x27 (see i2cdetect -y 1)")
	}

	cfg := &Config{
		Display: DisplayConfig{
			Bus:         v.GetInt(KeyBus),
			FallbackBus: v.GetInt(KeyFallbackBus),
			Address:     addr,
		},
		Network: NetworkConfig{
			Interfaces:  splitList(v.GetStringSlice(KeyInterfaces)),
			Prefixes:    splitList(v.GetStringSlice(KeyIfacePrefixes)),
			Window:      v.GetDuration(KeyWindow),
			Scale:       strings.ToLower(v.GetString(KeyNetScale)),
			CounterBits: v.GetInt(KeyCounterBits),
		},
		Telemetry: TelemetryConfig{
			Backend:    strings.ToLower(v.GetString(KeyTelemetry)),
			ProcRoot:   v.GetString(KeyProcRoot),
			TempSensor: v.GetString(KeyTempSensor),
		},
		Interval: v.GetDuration(KeyInterval),
		Debug:    v.GetBool(KeyDebug),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList flattens comma or space separated entries and drops blanks, so
// LCDMON_INTERFACES="eth0,wlan0" and repeated flags both work.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			out = append(out, part)
		}
	}
	return out
}
