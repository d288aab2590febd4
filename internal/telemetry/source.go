// Package telemetry reads raw host counters for the dashboard.
//
// Two backends implement Source:
//
//	PSUtil  - gopsutil, works on every platform gopsutil supports
//	Procfs  - reads /proc and /sys directly through an afero.Fs
//
// Sources return raw, cumulative values. Turning counters into rates and
// CPU times into load ratios is the sampler's job.
package telemetry

import (
	stderrors "errors"
	"sort"
	"strings"

	"github.com/rileyhilliard/lcdmon/internal/errors"
)

// NetCounters holds the cumulative byte counters of one interface.
type NetCounters struct {
	RxBytes uint64
	TxBytes uint64
}

// CoreTimes holds cumulative busy and idle time of one CPU core, in seconds
// or jiffies depending on the backend. Only ratios of deltas are meaningful.
type CoreTimes struct {
	Busy float64
	Idle float64
}

// Memory holds total and available memory in bytes.
type Memory struct {
	TotalBytes     uint64
	AvailableBytes uint64
}

// UsedRatio returns the fraction of memory in use, in [0,1].
func (m Memory) UsedRatio() float64 {
	if m.TotalBytes == 0 || m.AvailableBytes >= m.TotalBytes {
		return 0
	}
	return float64(m.TotalBytes-m.AvailableBytes) / float64(m.TotalBytes)
}

// Source is the narrow telemetry capability the sampler depends on.
type Source interface {
	// Interfaces lists the names of all network interfaces.
	Interfaces() ([]string, error)
	// NetCounters returns the byte counters for the named interface.
	// A missing interface is an error, never zero traffic.
	NetCounters(name string) (NetCounters, error)
	// CPUTimes returns cumulative busy/idle times per core, in core order.
	CPUTimes() ([]CoreTimes, error)
	// Memory returns total and available memory.
	Memory() (Memory, error)
	// Temperature returns the CPU temperature in degrees Celsius.
	Temperature() (float64, error)
}

// Backend names accepted by New.
const (
	BackendPSUtil = "psutil"
	BackendProcfs = "procfs"
)

// Options configures a Source.
type Options struct {
	Backend    string
	ProcRoot   string // filesystem root for the procfs backend, "/" by default
	TempSensor string // sensor key or thermal zone type; empty picks the first CPU-like sensor
}

// New returns the Source for the configured backend.
func New(opts Options) (Source, error) {
	switch opts.Backend {
	case "", BackendPSUtil:
		return NewPSUtil(opts.TempSensor), nil
	case BackendProcfs:
		return NewProcfs(nil, opts.ProcRoot, opts.TempSensor), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown telemetry backend '"+opts.Backend+"'",
			"Use one of: "+BackendPSUtil+", "+BackendProcfs)
	}
}

// Discover returns the sorted interface names starting with any of prefixes.
func Discover(src Source, prefixes []string) ([]string, error) {
	all, err := src.Interfaces()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTelemetry,
			"Failed to list network interfaces", "")
	}

	var names []string
	for _, name := range all {
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(name, p) {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// cpuSensorHints are substrings of sensor names that report CPU temperature.
var cpuSensorHints = []string{
	"cpu",
	"coretemp",
	"k10temp",
	"zenpower",
	"soc",
	"x86_pkg_temp",
}

func looksLikeCPUSensor(name string) bool {
	name = strings.ToLower(name)
	for _, hint := range cpuSensorHints {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

// Sentinel errors wrapped by the backends.
var (
	ErrInterfaceNotFound = stderrors.New("interface not found")
	ErrSensorNotFound    = stderrors.New("no CPU temperature sensor found")
)
