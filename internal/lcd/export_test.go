package lcd

import "time"

// NoSleep disables the driver's timing delays for tests.
func (d *HD44780) NoSleep() *HD44780 {
	d.sleep = func(time.Duration) {}
	return d
}
