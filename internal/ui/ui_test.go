package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPanel(t *testing.T) {
	out := RenderPanel(PanelInfo{
		Title:  "lcdmon demo",
		Lines:  []string{"█ |▁▁|▅", "cpu 48°C   3/120Mbps"},
		On:     true,
		Footer: "eth0",
	})

	assert.Contains(t, out, "lcdmon demo")
	assert.Contains(t, out, SymbolLive)
	assert.Contains(t, out, "cpu 48°C   3/120Mbps")
	assert.Contains(t, out, "█ |▁▁|▅")
	assert.Contains(t, out, "eth0")
	assert.Contains(t, out, "╭", "rounded border")
}

func TestRenderPanel_Off(t *testing.T) {
	out := RenderPanel(PanelInfo{Title: "lcdmon", Lines: []string{"x"}})
	assert.Contains(t, out, SymbolPending)
}

func TestRenderPanel_FooterState(t *testing.T) {
	tests := []struct {
		name   string
		state  PanelState
		symbol string
		absent []string
	}{
		{"polling", PanelPolling, "", []string{SymbolSuccess, SymbolFail}},
		{"stopped", PanelStopped, SymbolSuccess, []string{SymbolFail}},
		{"failed", PanelFailed, SymbolFail, []string{SymbolSuccess}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderPanel(PanelInfo{Lines: []string{"x"}, Footer: "after 3 frames", State: tt.state})
			if tt.symbol != "" {
				assert.Contains(t, out, tt.symbol+" after 3 frames")
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderPanel_NoTitleOrFooter(t *testing.T) {
	out := RenderPanel(PanelInfo{Lines: []string{"abc"}, On: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3, "top border, one row, bottom border")
}

func TestScreen_AppendsWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewScreen(&buf)

	require.NoError(t, s.Draw("one\n"))
	require.NoError(t, s.Draw("two\n"))
	s.Close()

	assert.Equal(t, "one\n\ntwo\n", buf.String())
	assert.Equal(t, 2, s.Frames())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(nil))
}

func TestOrderLike(t *testing.T) {
	options := []InterfaceOption{{Name: "eth0"}, {Name: "eth1"}, {Name: "wlan0"}}

	assert.Equal(t, []string{"eth0", "wlan0"}, orderLike(options, []string{"wlan0", "eth0"}))
	assert.Empty(t, orderLike(options, nil))
	assert.Empty(t, orderLike(options, []string{"usb0"}))
}

func TestInterfaceOptions(t *testing.T) {
	opts := interfaceOptions([]InterfaceOption{{Name: "eth0", Selected: true}, {Name: "wlan0"}})
	require.Len(t, opts, 2)
	assert.Equal(t, "eth0", opts[0].Value)
	assert.Equal(t, "wlan0", opts[1].Key)
}
