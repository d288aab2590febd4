//go:build linux

package lcd

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// i2cSlave is the I2C_SLAVE ioctl from linux/i2c-dev.h.
const i2cSlave = 0x0703

type devBus struct {
	f *os.File
}

// DevBusSupported reports whether OpenDevBus can reach /dev/i2c-N here.
const DevBusSupported = true

// OpenDevBus opens /dev/i2c-<bus> and binds it to addr.
func OpenDevBus(bus int, addr uint16) (Bus, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, int(addr)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set slave address 0x%02x: %w", addr, err)
	}
	return &devBus{f: f}, nil
}

func (b *devBus) Write(p []byte) error {
	_, err := b.f.Write(p)
	return err
}

func (b *devBus) Close() error {
	return b.f.Close()
}

// IsAddressError reports whether err means nothing answered at the device
// address or the bus itself is missing.
func IsAddressError(err error) bool {
	return errors.Is(err, unix.ENXIO) ||
		errors.Is(err, unix.EREMOTEIO) ||
		errors.Is(err, unix.ENOENT)
}
