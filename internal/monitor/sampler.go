package monitor

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/logger"
	"github.com/rileyhilliard/lcdmon/internal/telemetry"
)

// SamplerConfig selects what the sampler tracks.
type SamplerConfig struct {
	Interfaces  []string
	Window      time.Duration // peak window, DefaultWindow if zero
	CounterBits int           // width of the interface byte counters, 64 if zero
}

// linkState is the per-interface state carried between polls.
type linkState struct {
	name    string
	last    RateSample
	history *HistoryWindow
}

// Sampler turns raw telemetry into dashboard snapshots. It keeps the last
// counter sample and rate history of every interface, and the last CPU
// times, so each Sample reports activity since the previous one.
type Sampler struct {
	src        telemetry.Source
	counterMax uint64
	links      []*linkState
	lastCPU    []telemetry.CoreTimes
	log        logger.Logger
	now        func() time.Time
}

// NewSampler takes the initial reading of every source. Any failure here
// is a startup error.
func NewSampler(src telemetry.Source, cfg SamplerConfig, log logger.Logger) (*Sampler, error) {
	return newSampler(src, cfg, log, time.Now)
}

func newSampler(src telemetry.Source, cfg SamplerConfig, log logger.Logger, now func() time.Time) (*Sampler, error) {
	if log == nil {
		log = logger.Noop()
	}
	s := &Sampler{
		src:        src,
		counterMax: CounterMax(cfg.CounterBits),
		log:        log,
		now:        now,
	}

	for _, name := range cfg.Interfaces {
		sample, err := s.readLink(name)
		if err != nil {
			return nil, err
		}
		s.links = append(s.links, &linkState{
			name:    name,
			last:    sample,
			history: NewHistoryWindow(cfg.Window),
		})
	}

	cores, err := src.CPUTimes()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read CPU load")
	}
	s.lastCPU = cores

	if _, err := s.memoryUsed(); err != nil {
		return nil, err
	}
	if _, err := s.temperature(); err != nil {
		return nil, err
	}

	return s, nil
}

// Cores returns the number of CPU cores being tracked.
func (s *Sampler) Cores() int {
	return len(s.lastCPU)
}

// Interfaces returns the tracked interface names in display order.
func (s *Sampler) Interfaces() []string {
	names := make([]string, len(s.links))
	for i, l := range s.links {
		names[i] = l.name
	}
	return names
}

// Sample reads every source once. The first failure is returned and the
// snapshot must be discarded; a missing interface is never reported as idle.
func (s *Sampler) Sample() (Snapshot, error) {
	snap := Snapshot{Links: make([]Link, 0, len(s.links))}

	for _, link := range s.links {
		speeds, err := s.sampleLink(link)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Links = append(snap.Links, Link{Name: link.name, Speeds: speeds})
	}

	loads, err := s.coreLoads()
	if err != nil {
		return Snapshot{}, err
	}
	snap.CoreLoads = loads

	if snap.MemoryUsed, err = s.memoryUsed(); err != nil {
		return Snapshot{}, err
	}
	if snap.TempC, err = s.temperature(); err != nil {
		return Snapshot{}, err
	}

	histories := make([]*HistoryWindow, len(s.links))
	for i, link := range s.links {
		histories[i] = link.history
	}
	snap.Peak, _ = PeakOf(histories...)
	snap.Time = s.now()

	return snap, nil
}

func (s *Sampler) readLink(name string) (RateSample, error) {
	c, err := s.src.NetCounters(name)
	if err != nil {
		return RateSample{}, errors.Wrap(err, fmt.Sprintf("Failed to read counters for %s", name))
	}
	return RateSample{Time: s.now(), RxBytes: c.RxBytes, TxBytes: c.TxBytes}, nil
}

func (s *Sampler) sampleLink(link *linkState) (RateSpeeds, error) {
	cur, err := s.readLink(link.name)
	if err != nil {
		return RateSpeeds{}, err
	}

	speeds, err := Speeds(link.last, cur, s.counterMax)
	if err != nil {
		return RateSpeeds{}, errors.Wrap(err, fmt.Sprintf("Failed to compute rate for %s", link.name))
	}

	link.last = cur
	link.history.Push(cur.Time, speeds)

	s.log.Debug("%s: tx %s rx %s in %.2fs", link.name,
		humanize.Bytes(speeds.Tx.Bytes), humanize.Bytes(speeds.Rx.Bytes), speeds.Tx.Secs)

	return speeds, nil
}

// coreLoads returns the busy ratio of every core since the previous call.
func (s *Sampler) coreLoads() ([]float64, error) {
	cores, err := s.src.CPUTimes()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read CPU load")
	}
	if len(cores) != len(s.lastCPU) {
		return nil, errors.New(errors.ErrTelemetry,
			fmt.Sprintf("CPU core count changed from %d to %d", len(s.lastCPU), len(cores)),
			"Restart lcdmon so the layout can be rebuilt")
	}

	loads := make([]float64, len(cores))
	for i, cur := range cores {
		prev := s.lastCPU[i]
		busy := cur.Busy - prev.Busy
		idle := cur.Idle - prev.Idle
		if total := busy + idle; total > 0 {
			loads[i] = Clamp01(busy / total)
		}
	}
	s.lastCPU = cores
	return loads, nil
}

func (s *Sampler) memoryUsed() (float64, error) {
	mem, err := s.src.Memory()
	if err != nil {
		return 0, errors.Wrap(err, "Failed to read memory usage")
	}
	if mem.TotalBytes == 0 {
		return 0, errors.New(errors.ErrTelemetry, "Total memory reported as zero", "")
	}
	return Clamp01(mem.UsedRatio()), nil
}

func (s *Sampler) temperature() (float64, error) {
	t, err := s.src.Temperature()
	if err != nil {
		return 0, errors.Wrap(err, "Failed to read CPU temperature")
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, errors.New(errors.ErrTelemetry,
			fmt.Sprintf("CPU temperature reading is not a number: %v", t),
			"Check --temp-sensor")
	}
	return t, nil
}

// Clamp01 clamps v to [0,1]; NaN becomes 0.
func Clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
