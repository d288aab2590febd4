// Package testing provides test doubles for the telemetry package.
package testing

import (
	"fmt"
	"sync"

	"github.com/rileyhilliard/lcdmon/internal/telemetry"
)

// FakeSource is a scriptable telemetry.Source.
//
// Counters and CPU times are cumulative, like the real backends; tests
// advance them with AddTraffic and AddCPU between polls.
type FakeSource struct {
	mu sync.Mutex

	Net   map[string]telemetry.NetCounters
	Cores []telemetry.CoreTimes
	Mem   telemetry.Memory
	TempC float64

	// Failure injection, keyed by method name ("NetCounters", "CPUTimes",
	// "Memory", "Temperature", "Interfaces").
	FailOn    map[string]error
	FailAfter map[string]int // fail once a method has been called this many times

	Calls map[string]int
}

// NewFakeSource creates a source with the given cores and interfaces, all idle.
func NewFakeSource(cores int, ifaces ...string) *FakeSource {
	f := &FakeSource{
		Net:       make(map[string]telemetry.NetCounters),
		Cores:     make([]telemetry.CoreTimes, cores),
		Mem:       telemetry.Memory{TotalBytes: 8 << 30, AvailableBytes: 8 << 30},
		TempC:     40,
		FailOn:    make(map[string]error),
		FailAfter: make(map[string]int),
		Calls:     make(map[string]int),
	}
	for _, name := range ifaces {
		f.Net[name] = telemetry.NetCounters{}
	}
	return f
}

// AddTraffic advances the counters of an interface.
func (f *FakeSource) AddTraffic(name string, rx, tx uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.Net[name]
	c.RxBytes += rx
	c.TxBytes += tx
	f.Net[name] = c
}

// SetCounters overwrites the counters of an interface (e.g. to simulate a wrap).
func (f *FakeSource) SetCounters(name string, rx, tx uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Net[name] = telemetry.NetCounters{RxBytes: rx, TxBytes: tx}
}

// AddCPU advances the busy and idle time of one core.
func (f *FakeSource) AddCPU(core int, busy, idle float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cores[core].Busy += busy
	f.Cores[core].Idle += idle
}

// RemoveInterface makes later reads of an interface fail.
func (f *FakeSource) RemoveInterface(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Net, name)
}

func (f *FakeSource) call(method string) error {
	f.Calls[method]++
	if err, ok := f.FailOn[method]; ok {
		return err
	}
	if n, ok := f.FailAfter[method]; ok && f.Calls[method] > n {
		return fmt.Errorf("fake %s failure after %d calls", method, n)
	}
	return nil
}

func (f *FakeSource) Interfaces() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Interfaces"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.Net))
	for name := range f.Net {
		names = append(names, name)
	}
	return names, nil
}

func (f *FakeSource) NetCounters(name string) (telemetry.NetCounters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("NetCounters"); err != nil {
		return telemetry.NetCounters{}, err
	}
	c, ok := f.Net[name]
	if !ok {
		return telemetry.NetCounters{}, fmt.Errorf("failed to get stats for %s: %w", name, telemetry.ErrInterfaceNotFound)
	}
	return c, nil
}

func (f *FakeSource) CPUTimes() ([]telemetry.CoreTimes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CPUTimes"); err != nil {
		return nil, err
	}
	out := make([]telemetry.CoreTimes, len(f.Cores))
	copy(out, f.Cores)
	return out, nil
}

func (f *FakeSource) Memory() (telemetry.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Memory"); err != nil {
		return telemetry.Memory{}, err
	}
	return f.Mem, nil
}

func (f *FakeSource) Temperature() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Temperature"); err != nil {
		return 0, err
	}
	return f.TempC, nil
}

var _ telemetry.Source = (*FakeSource)(nil)
