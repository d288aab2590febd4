package monitor

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rileyhilliard/lcdmon/internal/lcd"
	"github.com/rileyhilliard/lcdmon/internal/logger"
)

// DefaultInterval is the pause between polls.
const DefaultInterval = 500 * time.Millisecond

// State is the poll loop state.
type State int

const (
	StateRunning State = iota
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// SnapshotSource produces one snapshot per poll. *Sampler implements it.
type SnapshotSource interface {
	Sample() (Snapshot, error)
}

// LoopConfig wires a Loop together. Sampler and Renderer are required.
type LoopConfig struct {
	Sampler  SnapshotSource
	Renderer *lcd.Renderer
	Interval time.Duration // DefaultInterval if zero
	Stop     *atomic.Bool  // a fresh flag is created if nil
	Logger   logger.Logger

	// AfterRender runs after every frame has been drawn.
	AfterRender func(Snapshot)
}

// Loop samples, renders and sleeps until its stop flag is set.
type Loop struct {
	sampler     SnapshotSource
	renderer    *lcd.Renderer
	interval    time.Duration
	stop        *atomic.Bool
	log         logger.Logger
	afterRender func(Snapshot)
	sleep       func(time.Duration)

	state State
	polls int
}

// NewLoop creates a loop in the running state.
func NewLoop(cfg LoopConfig) *Loop {
	l := &Loop{
		sampler:     cfg.Sampler,
		renderer:    cfg.Renderer,
		interval:    cfg.Interval,
		stop:        cfg.Stop,
		log:         cfg.Logger,
		afterRender: cfg.AfterRender,
		sleep:       time.Sleep,
		state:       StateRunning,
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.stop == nil {
		l.stop = new(atomic.Bool)
	}
	if l.log == nil {
		l.log = logger.Noop()
	}
	return l
}

// Stop asks the loop to shut down at the next iteration boundary. Safe to
// call from any goroutine.
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// State returns the current loop state.
func (l *Loop) State() State {
	return l.state
}

// Polls returns how many frames have been rendered.
func (l *Loop) Polls() int {
	return l.polls
}

// Run polls until stopped. A sampling failure is returned immediately and
// the display is left as is. On a normal stop the display and backlight are
// switched off and Run returns nil.
func (l *Loop) Run() error {
	l.log.Info("polling every %s", l.interval)

	for l.state == StateRunning {
		if l.stop.Load() {
			l.state = StateStopping
			break
		}

		snap, err := l.sampler.Sample()
		if err != nil {
			return err
		}

		l.renderer.Render(FrameOf(snap))
		l.polls++
		l.log.Debug("poll %d: peak %d/%d Mbps", l.polls, snap.Peak.TxMbps, snap.Peak.RxMbps)
		if l.afterRender != nil {
			l.afterRender(snap)
		}

		l.sleep(l.interval)
	}

	l.log.Info("stopping after %d polls", l.polls)
	l.renderer.Shutdown()
	return nil
}

// FrameOf converts a snapshot into the frame the renderer draws.
func FrameOf(s Snapshot) lcd.Frame {
	links := make([]lcd.LinkRate, len(s.Links))
	for i, link := range s.Links {
		links[i] = lcd.LinkRate{
			TxMbps: link.Speeds.Tx.Mbps(),
			RxMbps: link.Speeds.Rx.Mbps(),
		}
	}
	return lcd.Frame{
		CoreLoads:  s.CoreLoads,
		Links:      links,
		MemoryUsed: s.MemoryUsed,
		TempC:      s.TempC,
		PeakTxMbps: s.Peak.TxMbps,
		PeakRxMbps: s.Peak.RxMbps,
	}
}

// NotifyStop sets stop when SIGINT or SIGTERM arrives. The returned
// function stops signal delivery.
func NotifyStop(stop *atomic.Bool) (cancel func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			stop.Store(true)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
