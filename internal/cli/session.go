package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync/atomic"

	"github.com/rileyhilliard/lcdmon/internal/config"
	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/lcd"
	"github.com/rileyhilliard/lcdmon/internal/logger"
	"github.com/rileyhilliard/lcdmon/internal/monitor"
	"github.com/rileyhilliard/lcdmon/internal/telemetry"
	"github.com/rileyhilliard/lcdmon/internal/ui"
)

// deps holds everything run and demo touch outside the process, so tests
// can substitute fakes.
type deps struct {
	newSource func(telemetry.Options) (telemetry.Source, error)
	openBus   lcd.BusOpener
	pick      func([]ui.InterfaceOption, int) ([]string, error)
	stdout    io.Writer
	log       logger.Logger
	stop      *atomic.Bool
	signals   bool // forward SIGINT/SIGTERM to stop
}

func defaultDeps() deps {
	return deps{
		newSource: telemetry.New,
		openBus:   lcd.OpenDevBus,
		pick:      ui.PickInterfaces,
		stdout:    os.Stdout,
		log:       logger.Default(),
		stop:      new(atomic.Bool),
		signals:   true,
	}
}

// session is the telemetry side of a dashboard: the source, the cores it
// reports, the interfaces that will be drawn and a sampler that has taken
// its first reading.
type session struct {
	src        telemetry.Source
	cores      int
	interfaces []string
	sampler    *monitor.Sampler
}

// openSession creates the telemetry source, settles which interfaces fit on
// the display and takes the first reading of every source.
func openSession(cfg *config.Config, pick bool, d deps) (*session, error) {
	src, err := d.newSource(cfg.TelemetryOptions())
	if err != nil {
		return nil, err
	}

	times, err := src.CPUTimes()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read CPU load")
	}
	cores := len(times)

	names, err := resolveInterfaces(cfg, src, cores, d.log)
	if err != nil {
		return nil, err
	}

	if pick {
		names, err = pickInterfaces(src, names, lcd.MaxLinks(cores), d.pick)
		if err != nil {
			return nil, err
		}
	}

	if len(names) == 0 {
		d.log.Warn("no network interfaces selected, only CPU and memory will be shown")
	}
	d.log.Info("%d cores, interfaces %v", cores, names)

	sampler, err := monitor.NewSampler(src, cfg.SamplerConfig(names), d.log)
	if err != nil {
		return nil, err
	}

	return &session{src: src, cores: cores, interfaces: names, sampler: sampler}, nil
}

// resolveInterfaces returns the configured interfaces, or the discovered
// ones capped to what fits next to the CPU gauges.
func resolveInterfaces(cfg *config.Config, src telemetry.Source, cores int, log logger.Logger) ([]string, error) {
	layout := cfg.Layout()
	if !layout.Fits(cores, 0) {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("%d CPU cores do not fit on a %d-column display", cores, lcd.Cols),
			"lcdmon draws one gauge column per core")
	}
	limit := lcd.MaxLinks(cores)

	if explicit := cfg.Network.Interfaces; len(explicit) > 0 {
		if !layout.Fits(cores, len(explicit)) {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("%d interfaces do not fit next to %d CPU gauges", len(explicit), cores),
				fmt.Sprintf("Pick at most %d with --interfaces", limit))
		}
		return explicit, nil
	}

	found, err := telemetry.Discover(src, cfg.Network.Prefixes)
	if err != nil {
		return nil, err
	}
	if len(found) > limit {
		log.Warn("showing %d of %d interfaces (%v); use --interfaces to choose", limit, len(found), found)
		found = found[:limit]
	}
	return found, nil
}

// pickInterfaces offers every interface, with the current choice preselected.
func pickInterfaces(src telemetry.Source, current []string, limit int,
	pick func([]ui.InterfaceOption, int) ([]string, error)) ([]string, error) {
	all, err := src.Interfaces()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list network interfaces")
	}
	sort.Strings(all)

	selected := make(map[string]bool, len(current))
	for _, name := range current {
		selected[name] = true
	}
	options := make([]ui.InterfaceOption, len(all))
	for i, name := range all {
		options[i] = ui.InterfaceOption{Name: name, Selected: selected[name]}
	}

	return pick(options, limit)
}

// newLoop wires a sampler and renderer for display into a poll loop.
func (s *session) newLoop(cfg *config.Config, display lcd.Display, d deps, afterRender func(monitor.Snapshot)) *monitor.Loop {
	return monitor.NewLoop(monitor.LoopConfig{
		Sampler:     s.sampler,
		Renderer:    lcd.NewRenderer(display, cfg.Layout(), d.log),
		Interval:    cfg.Interval,
		Stop:        d.stop,
		Logger:      d.log,
		AfterRender: afterRender,
	})
}

// runLoop runs loop, stopping it on SIGINT/SIGTERM when enabled.
func runLoop(loop *monitor.Loop, d deps) error {
	if d.signals {
		cancel := monitor.NotifyStop(d.stop)
		defer cancel()
	}
	return loop.Run()
}
