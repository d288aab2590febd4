package telemetry

import (
	"bufio"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Procfs reads telemetry straight from Linux /proc and /sys files.
type Procfs struct {
	fs         afero.Fs
	root       string
	tempSensor string
}

// NewProcfs creates a procfs-backed Source. A nil fs means the OS filesystem;
// root is prepended to every path (useful for containers mounting the host /proc).
func NewProcfs(fs afero.Fs, root, tempSensor string) *Procfs {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if root == "" {
		root = "/"
	}
	return &Procfs{fs: fs, root: root, tempSensor: tempSensor}
}

func (p *Procfs) path(rel string) string {
	return filepath.Join(p.root, rel)
}

func (p *Procfs) read(rel string) (string, error) {
	data, err := afero.ReadFile(p.fs, p.path(rel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Interfaces lists the interfaces in /proc/net/dev.
func (p *Procfs) Interfaces() ([]string, error) {
	counters, err := p.netDev()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// NetCounters returns the byte counters of one interface from /proc/net/dev.
func (p *Procfs) NetCounters(name string) (NetCounters, error) {
	counters, err := p.netDev()
	if err != nil {
		return NetCounters{}, fmt.Errorf("failed to get stats for %s: %w", name, err)
	}
	c, ok := counters[name]
	if !ok {
		return NetCounters{}, fmt.Errorf("failed to get stats for %s: %w", name, ErrInterfaceNotFound)
	}
	return c, nil
}

func (p *Procfs) netDev() (map[string]NetCounters, error) {
	content, err := p.read("proc/net/dev")
	if err != nil {
		return nil, fmt.Errorf("failed to read /proc/net/dev: %w", err)
	}
	return ParseNetDev(content)
}

// CPUTimes returns per-core busy/idle jiffies from /proc/stat.
func (p *Procfs) CPUTimes() ([]CoreTimes, error) {
	content, err := p.read("proc/stat")
	if err != nil {
		return nil, fmt.Errorf("failed to read /proc/stat: %w", err)
	}
	return ParseProcStatCores(content)
}

// Memory returns MemTotal and MemAvailable from /proc/meminfo.
func (p *Procfs) Memory() (Memory, error) {
	content, err := p.read("proc/meminfo")
	if err != nil {
		return Memory{}, fmt.Errorf("failed to read /proc/meminfo: %w", err)
	}
	return ParseMeminfo(content)
}

// Temperature reads a thermal zone. With a configured sensor the zone whose
// type matches is used; otherwise the first CPU-like zone, then thermal_zone0.
func (p *Procfs) Temperature() (float64, error) {
	zones, err := afero.Glob(p.fs, p.path("sys/class/thermal/thermal_zone*"))
	if err != nil {
		return 0, fmt.Errorf("failed to list thermal zones: %w", err)
	}
	sort.Strings(zones)

	chosen := ""
	for _, zone := range zones {
		typ, err := afero.ReadFile(p.fs, filepath.Join(zone, "type"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(typ))
		if p.tempSensor != "" {
			if name == p.tempSensor {
				chosen = zone
				break
			}
			continue
		}
		if looksLikeCPUSensor(name) {
			chosen = zone
			break
		}
	}

	if chosen == "" {
		if p.tempSensor != "" || len(zones) == 0 {
			return 0, fmt.Errorf("failed to get CPU temperature: %w", ErrSensorNotFound)
		}
		chosen = zones[0]
	}

	raw, err := afero.ReadFile(p.fs, filepath.Join(chosen, "temp"))
	if err != nil {
		return 0, fmt.Errorf("failed to get CPU temperature: %w", err)
	}
	milli, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", filepath.Join(chosen, "temp"), err)
	}
	return milli / 1000, nil
}

// ParseNetDev parses /proc/net/dev into byte counters keyed by interface name.
func ParseNetDev(procNetDev string) (map[string]NetCounters, error) {
	counters := make(map[string]NetCounters)
	scanner := bufio.NewScanner(strings.NewReader(procNetDev))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Two header lines
		if lineNum <= 2 {
			continue
		}

		// "  iface: bytes packets errs drop fifo frame compressed multicast | bytes packets..."
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		fields := strings.Fields(parts[1])

		// 8 receive + 8 transmit columns
		if len(fields) < 16 {
			continue
		}

		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rx_bytes for %s: %w", name, err)
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tx_bytes for %s: %w", name, err)
		}

		counters[name] = NetCounters{RxBytes: rx, TxBytes: tx}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/net/dev: %w", err)
	}

	return counters, nil
}

// ParseProcStatCores parses the per-core cpuN lines of /proc/stat.
// idle and iowait count as idle; everything else except guest time counts as busy.
func ParseProcStatCores(procStat string) ([]CoreTimes, error) {
	var cores []CoreTimes
	scanner := bufio.NewScanner(strings.NewReader(procStat))

	for scanner.Scan() {
		line := scanner.Text()

		// cpu0, cpu1, ... but not the aggregate "cpu " line
		if !strings.HasPrefix(line, "cpu") || len(line) <= 3 || line[3] < '0' || line[3] > '9' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		// Fields: cpuN user nice system idle iowait irq softirq steal guest guest_nice
		var core CoreTimes
		for i := 1; i < len(fields) && i <= 8; i++ {
			val, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s field %d: %w", fields[0], i, err)
			}
			if i == 4 || i == 5 {
				core.Idle += float64(val)
			} else {
				core.Busy += float64(val)
			}
		}
		cores = append(cores, core)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("no per-core lines found in /proc/stat")
	}

	return cores, nil
}

// ParseMeminfo parses MemTotal and MemAvailable out of /proc/meminfo.
// Kernels without MemAvailable fall back to MemFree + Buffers + Cached.
func ParseMeminfo(procMeminfo string) (Memory, error) {
	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))

	var memTotal, memFree, memAvailable, buffers, cached uint64
	haveTotal, haveAvailable := false, false

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSuffix(parts[0], ":")
		val, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}

		// Values in /proc/meminfo are in kB
		valBytes := val * 1024

		switch key {
		case "MemTotal":
			memTotal = valBytes
			haveTotal = true
		case "MemFree":
			memFree = valBytes
		case "MemAvailable":
			memAvailable = valBytes
			haveAvailable = true
		case "Buffers":
			buffers = valBytes
		case "Cached":
			cached = valBytes
		}
	}

	if err := scanner.Err(); err != nil {
		return Memory{}, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if !haveTotal || memTotal == 0 {
		return Memory{}, fmt.Errorf("MemTotal missing from /proc/meminfo")
	}
	if !haveAvailable {
		memAvailable = memFree + buffers + cached
	}

	return Memory{TotalBytes: memTotal, AvailableBytes: memAvailable}, nil
}
