package telemetry

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// PSUtil reads telemetry through gopsutil.
type PSUtil struct {
	tempSensor string

	ioCounters    func(pernic bool) ([]psnet.IOCountersStat, error)
	cpuTimes      func(percpu bool) ([]cpu.TimesStat, error)
	virtualMemory func() (*mem.VirtualMemoryStat, error)
	temperatures  func() ([]host.TemperatureStat, error)
}

// NewPSUtil creates a gopsutil-backed Source. tempSensor selects a sensor
// key; empty picks the first sensor that looks like a CPU sensor.
func NewPSUtil(tempSensor string) *PSUtil {
	return &PSUtil{
		tempSensor:    tempSensor,
		ioCounters:    psnet.IOCounters,
		cpuTimes:      cpu.Times,
		virtualMemory: mem.VirtualMemory,
		temperatures:  host.SensorsTemperatures,
	}
}

// Interfaces lists every interface gopsutil reports counters for.
func (p *PSUtil) Interfaces() ([]string, error) {
	stats, err := p.ioCounters(true)
	if err != nil {
		return nil, fmt.Errorf("failed to read interface counters: %w", err)
	}
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Name)
	}
	return names, nil
}

// NetCounters returns the byte counters of one interface.
func (p *PSUtil) NetCounters(name string) (NetCounters, error) {
	stats, err := p.ioCounters(true)
	if err != nil {
		return NetCounters{}, fmt.Errorf("failed to get stats for %s: %w", name, err)
	}
	for _, s := range stats {
		if s.Name == name {
			return NetCounters{RxBytes: s.BytesRecv, TxBytes: s.BytesSent}, nil
		}
	}
	return NetCounters{}, fmt.Errorf("failed to get stats for %s: %w", name, ErrInterfaceNotFound)
}

// CPUTimes returns cumulative per-core busy and idle seconds.
func (p *PSUtil) CPUTimes() ([]CoreTimes, error) {
	stats, err := p.cpuTimes(true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU load: %w", err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("failed to get CPU load: no cores reported")
	}

	cores := make([]CoreTimes, len(stats))
	for i, s := range stats {
		idle := s.Idle + s.Iowait
		busy := s.User + s.Nice + s.System + s.Irq + s.Softirq + s.Steal
		cores[i] = CoreTimes{Busy: busy, Idle: idle}
	}
	return cores, nil
}

// Memory returns total and available memory.
func (p *PSUtil) Memory() (Memory, error) {
	vm, err := p.virtualMemory()
	if err != nil {
		return Memory{}, fmt.Errorf("failed to get memory usage: %w", err)
	}
	return Memory{TotalBytes: vm.Total, AvailableBytes: vm.Available}, nil
}

// Temperature returns the configured or first CPU-like sensor reading.
func (p *PSUtil) Temperature() (float64, error) {
	temps, err := p.temperatures()
	// gopsutil returns partial results alongside warnings for unreadable sensors.
	if err != nil && len(temps) == 0 {
		return 0, fmt.Errorf("failed to get CPU temperature: %w", err)
	}

	for _, t := range temps {
		if p.tempSensor != "" {
			if t.SensorKey == p.tempSensor {
				return t.Temperature, nil
			}
			continue
		}
		if looksLikeCPUSensor(t.SensorKey) {
			return t.Temperature, nil
		}
	}

	if p.tempSensor != "" {
		return 0, fmt.Errorf("failed to get CPU temperature: sensor %q: %w", p.tempSensor, ErrSensorNotFound)
	}
	return 0, fmt.Errorf("failed to get CPU temperature: %w", ErrSensorNotFound)
}
