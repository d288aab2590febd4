package lcd_test

import (
	"errors"
	"os"
	"syscall"
	"testing"

	lcderrors "github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/lcd"
	lcdtesting "github.com/rileyhilliard/lcdmon/internal/lcd/testing"
	"github.com/rileyhilliard/lcdmon/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissingBus = &os.PathError{Op: "open", Path: "/dev/i2c-1", Err: syscall.ENOENT}

// fakeOpener hands out FakeBuses and fails the buses listed in failures.
type fakeOpener struct {
	failures map[int]error
	opened   []int
	buses    map[int]*lcdtesting.FakeBus
}

func newFakeOpener(failures map[int]error) *fakeOpener {
	return &fakeOpener{failures: failures, buses: make(map[int]*lcdtesting.FakeBus)}
}

func (o *fakeOpener) open(bus int, addr uint16) (lcd.Bus, error) {
	o.opened = append(o.opened, bus)
	if err, ok := o.failures[bus]; ok {
		return nil, err
	}
	b := &lcdtesting.FakeBus{}
	o.buses[bus] = b
	return b, nil
}

func TestOpenBus_Primary(t *testing.T) {
	o := newFakeOpener(nil)

	bus, n, err := lcd.OpenBus(o.open, lcd.BusConfig{Bus: 1, Fallback: 2, Address: 0x27}, logger.Noop())
	require.NoError(t, err)
	assert.NotNil(t, bus)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1}, o.opened)
	assert.Equal(t, []byte{0x00}, o.buses[1].Bytes(), "probe write")
}

func TestOpenBus_FallsBackOnAddressError(t *testing.T) {
	o := newFakeOpener(map[int]error{1: errMissingBus})
	log := logger.NewBufferLogger()

	_, n, err := lcd.OpenBus(o.open, lcd.BusConfig{Bus: 1, Fallback: 2, Address: 0x27}, log)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{1, 2}, o.opened)
	assert.True(t, log.HasLevel("warn"))
}

func TestOpenBus_FallsBackWhenProbeFails(t *testing.T) {
	o := newFakeOpener(nil)
	opener := func(bus int, addr uint16) (lcd.Bus, error) {
		b, err := o.open(bus, addr)
		if bus == 1 {
			b.(*lcdtesting.FakeBus).WriteFn = func([]byte) error { return errMissingBus }
		}
		return b, err
	}

	_, n, err := lcd.OpenBus(opener, lcd.BusConfig{Bus: 1, Fallback: 2, Address: 0x27}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, o.buses[1].Closed, "failed primary is closed")
}

func TestOpenBus_Failures(t *testing.T) {
	tests := []struct {
		name       string
		cfg        lcd.BusConfig
		failures   map[int]error
		wantOpened []int
	}{
		{
			name:       "other errors do not fall back",
			cfg:        lcd.BusConfig{Bus: 1, Fallback: 2, Address: 0x27},
			failures:   map[int]error{1: errors.New("permission denied")},
			wantOpened: []int{1},
		},
		{
			name:       "fallback disabled",
			cfg:        lcd.BusConfig{Bus: 1, Fallback: lcd.NoFallback, Address: 0x27},
			failures:   map[int]error{1: errMissingBus},
			wantOpened: []int{1},
		},
		{
			name:       "fallback same as primary",
			cfg:        lcd.BusConfig{Bus: 1, Fallback: 1, Address: 0x27},
			failures:   map[int]error{1: errMissingBus},
			wantOpened: []int{1},
		},
		{
			name:       "fallback tried only once",
			cfg:        lcd.BusConfig{Bus: 1, Fallback: 2, Address: 0x27},
			failures:   map[int]error{1: errMissingBus, 2: errMissingBus},
			wantOpened: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newFakeOpener(tt.failures)

			_, _, err := lcd.OpenBus(o.open, tt.cfg, nil)
			require.Error(t, err)
			assert.True(t, lcderrors.IsCode(err, lcderrors.ErrDisplay))
			assert.Equal(t, tt.wantOpened, o.opened)
		})
	}
}

func TestIsAddressError(t *testing.T) {
	assert.True(t, lcd.IsAddressError(errMissingBus))
	assert.False(t, lcd.IsAddressError(errors.New("boom")))
	assert.False(t, lcd.IsAddressError(nil))
}
