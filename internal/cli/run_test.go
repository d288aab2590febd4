package cli

import (
	"errors"
	"os"
	"syscall"
	"testing"

	lcderrors "github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/lcd"
	telemetrytest "github.com/rileyhilliard/lcdmon/internal/telemetry/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissingBus = &os.PathError{Op: "open", Path: "/dev/i2c", Err: syscall.ENOENT}

func TestRunCommand_StopsCleanly(t *testing.T) {
	env := newTestEnv(telemetrytest.NewFakeSource(2, "eth0"))
	env.deps.stop.Store(true)

	require.NoError(t, runCommand(testConfig(), false, env.deps))

	require.Equal(t, []int{1}, env.opened)
	bus := env.buses[1]
	require.NotNil(t, bus)
	assert.True(t, bus.Closed)

	// display off (backlight still on), then backlight off
	writes := bus.Writes
	require.GreaterOrEqual(t, len(writes), 2)
	assert.Equal(t, []byte{0x0C, 0x08, 0x8C, 0x88}, writes[len(writes)-2])
	assert.Equal(t, []byte{0x00}, writes[len(writes)-1])

	assert.True(t, env.log.HasLevel("info"))
}

func TestRunCommand_FallbackBus(t *testing.T) {
	env := newTestEnv(telemetrytest.NewFakeSource(2, "eth0"), 1)
	env.deps.stop.Store(true)

	require.NoError(t, runCommand(testConfig(), false, env.deps))

	assert.Equal(t, []int{1, 2}, env.opened)
	require.NotNil(t, env.buses[2])
	assert.True(t, env.buses[2].Closed)
	assert.True(t, env.log.HasLevel("warn"))
}

func TestRunCommand_NoDisplay(t *testing.T) {
	env := newTestEnv(telemetrytest.NewFakeSource(2, "eth0"), 1, 2)

	err := runCommand(testConfig(), false, env.deps)
	require.Error(t, err)
	assert.True(t, lcderrors.IsCode(err, lcderrors.ErrDisplay))
	assert.Equal(t, []int{1, 2}, env.opened)
}

func TestRunCommand_InitFailureIsFatal(t *testing.T) {
	env := newTestEnv(telemetrytest.NewFakeSource(2, "eth0"))
	cfg := testConfig()
	cfg.Display.FallbackBus = -1

	writes := 0
	inner := env.deps.openBus
	env.deps.openBus = func(n int, addr uint16) (bus lcd.Bus, err error) {
		bus, err = inner(n, addr)
		if err == nil {
			env.buses[n].WriteFn = func([]byte) error {
				writes++
				if writes > 1 { // let the probe through
					return errors.New("remote I/O error")
				}
				return nil
			}
		}
		return bus, err
	}

	err := runCommand(cfg, false, env.deps)
	require.Error(t, err)
	assert.True(t, lcderrors.IsCode(err, lcderrors.ErrDisplay))
	assert.True(t, env.buses[1].Closed)
}

func TestRunCommand_TelemetryFailsBeforeDisplay(t *testing.T) {
	src := telemetrytest.NewFakeSource(2, "eth0")
	src.FailOn["Memory"] = errors.New("no meminfo")
	env := newTestEnv(src)
	env.deps.stop.Store(true)

	err := runCommand(testConfig(), false, env.deps)
	require.Error(t, err)
	assert.True(t, lcderrors.IsCode(err, lcderrors.ErrTelemetry))
	assert.Empty(t, env.opened, "the bus is not touched")
}

func TestRunCommand_MissingInterface(t *testing.T) {
	env := newTestEnv(telemetrytest.NewFakeSource(2, "eth0"))
	cfg := testConfig()
	cfg.Network.Interfaces = []string{"eth9"}

	err := runCommand(cfg, false, env.deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eth9")
	assert.Empty(t, env.opened)
}
