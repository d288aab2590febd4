package lcd

import (
	"fmt"

	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/logger"
)

// DefaultAddress is the usual PCF8574 backpack address.
const DefaultAddress uint16 = 0x27

// NoFallback disables the fallback bus.
const NoFallback = -1

// Bus is a connection to one I2C slave device.
type Bus interface {
	Write(p []byte) error
	Close() error
}

// BusOpener opens the numbered I2C bus bound to a slave address.
type BusOpener func(bus int, addr uint16) (Bus, error)

// BusConfig selects the I2C bus and device address.
type BusConfig struct {
	Bus      int
	Fallback int // NoFallback to disable
	Address  uint16
}

// OpenBus opens and probes the primary bus. If that fails because nothing
// answers at the address (or the bus does not exist), the fallback bus is
// tried once. Any other failure is returned immediately.
func OpenBus(open BusOpener, cfg BusConfig, log logger.Logger) (Bus, int, error) {
	if log == nil {
		log = logger.Noop()
	}

	bus, err := openAndProbe(open, cfg.Bus, cfg.Address)
	if err == nil {
		return bus, cfg.Bus, nil
	}

	if cfg.Fallback == NoFallback || cfg.Fallback == cfg.Bus || !IsAddressError(err) {
		return nil, 0, busError(err, cfg.Bus, cfg.Address)
	}

	log.Warn("no device at 0x%02x on i2c-%d (%v), trying i2c-%d", cfg.Address, cfg.Bus, err, cfg.Fallback)
	bus, fbErr := openAndProbe(open, cfg.Fallback, cfg.Address)
	if fbErr != nil {
		return nil, 0, busError(fbErr, cfg.Fallback, cfg.Address)
	}
	return bus, cfg.Fallback, nil
}

func openAndProbe(open BusOpener, n int, addr uint16) (Bus, error) {
	bus, err := open(n, addr)
	if err != nil {
		return nil, err
	}
	// A single byte with every expander line low; the device must ACK it.
	if err := bus.Write([]byte{0x00}); err != nil {
		_ = bus.Close()
		return nil, err
	}
	return bus, nil
}

func busError(err error, n int, addr uint16) error {
	return errors.WrapWithCode(err, errors.ErrDisplay,
		fmt.Sprintf("Failed to open I2C device 0x%02x on bus %d", addr, n),
		"Check the wiring, that i2c-dev is loaded, and the address with 'i2cdetect -y "+fmt.Sprint(n)+"'")
}
