//go:build !linux

package lcd

import (
	"errors"
	"io/fs"
	"runtime"
)

// DevBusSupported reports whether OpenDevBus can reach /dev/i2c-N here.
const DevBusSupported = false

// OpenDevBus is only available on Linux.
func OpenDevBus(bus int, addr uint16) (Bus, error) {
	return nil, errors.New("i2c-dev is not supported on " + runtime.GOOS)
}

// IsAddressError reports whether err means the bus device is missing.
func IsAddressError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
