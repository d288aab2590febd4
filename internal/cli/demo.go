package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/lcdmon/internal/config"
	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/rileyhilliard/lcdmon/internal/lcd"
	"github.com/rileyhilliard/lcdmon/internal/monitor"
	"github.com/rileyhilliard/lcdmon/internal/ui"
	"github.com/spf13/cobra"
)

var (
	demoPick   bool
	demoFrames int
)

// demoCmd draws the dashboard in the terminal instead of on the LCD
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show the dashboard in the terminal",
	Long: `Sample this machine exactly like 'lcdmon run' but draw each frame on a
simulated 20x4 display in the terminal. No I2C hardware is needed.

Gauge glyphs are shown as ▁▂▃▄▅▆▇█.

Examples:
  lcdmon demo
  lcdmon demo --frames 10 --interval 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := defaultDeps()
		d.stdout = cmd.OutOrStdout()
		return demoCommand(cfg, demoPick, demoFrames, d)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolVar(&demoPick, "pick", false, "choose interfaces interactively")
	demoCmd.Flags().IntVar(&demoFrames, "frames", 0, "stop after this many frames (0 runs until interrupted)")
}

// demoCommand runs the dashboard against an in-memory display and draws
// it after every frame. frames > 0 stops the loop after that many frames.
func demoCommand(cfg *config.Config, pick bool, frames int, d deps) error {
	if frames < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--frames must not be negative, got %d", frames), "")
	}

	s, err := openSession(cfg, pick, d)
	if err != nil {
		return err
	}

	display := lcd.NewMockDisplay()
	if err := lcd.UploadGauge(display); err != nil {
		return err
	}

	screen := ui.NewScreen(d.stdout)
	defer screen.Close()

	draw := func(state ui.PanelState, footer string) {
		if err := screen.Draw(ui.RenderPanel(ui.PanelInfo{
			Title:  "lcdmon demo",
			Lines:  display.Lines(),
			On:     display.IsOn(),
			Footer: footer,
			State:  state,
		})); err != nil {
			d.log.Warn("drawing demo frame failed: %v", err)
		}
	}

	loop := s.newLoop(cfg, display, d, func(snap monitor.Snapshot) {
		draw(ui.PanelPolling, demoFooter(snap))
		if frames > 0 && screen.Frames() >= frames {
			d.stop.Store(true)
		}
	})

	if err := runLoop(loop, d); err != nil {
		draw(ui.PanelFailed, fmt.Sprintf("polling failed after %d frames", loop.Polls()))
		return err
	}

	draw(ui.PanelStopped, fmt.Sprintf("stopped after %d frames", loop.Polls()))
	return nil
}

// demoFooter summarizes a snapshot in plain numbers under the panel.
func demoFooter(snap monitor.Snapshot) string {
	parts := make([]string, 0, len(snap.Links)+1)
	for _, link := range snap.Links {
		parts = append(parts, fmt.Sprintf("%s ↑%s/s ↓%s/s", link.Name,
			humanize.Bytes(perSecond(link.Speeds.Tx)),
			humanize.Bytes(perSecond(link.Speeds.Rx))))
	}
	parts = append(parts, fmt.Sprintf("mem %.0f%%", snap.MemoryUsed*100))
	return strings.Join(parts, "  ")
}

func perSecond(s monitor.RateSpeed) uint64 {
	if s.Secs <= 0 {
		return 0
	}
	return uint64(float64(s.Bytes) / s.Secs)
}
