package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PanelState says how polling ended; it styles the footer.
type PanelState int

const (
	PanelPolling PanelState = iota
	PanelStopped
	PanelFailed
)

// PanelInfo is the text drawn around a simulated LCD.
type PanelInfo struct {
	Title  string   // e.g. "lcdmon demo"
	Lines  []string // display contents, one string per row
	On     bool     // false dims the contents like a powered-off module
	Footer string   // optional status under the panel
	State  PanelState
}

// RenderPanel draws display lines inside a rounded box, styled like a
// backlit character LCD.
func RenderPanel(info PanelInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)

	textColor := ColorPanelText
	symbol := SymbolLive
	if !info.On {
		textColor = ColorPanelOff
		symbol = SymbolPending
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPanelBorder).
		Foreground(textColor).
		Padding(0, 1)

	var out strings.Builder

	if info.Title != "" {
		out.WriteString(titleStyle.Render(symbol + " " + info.Title))
		out.WriteString("\n")
	}

	out.WriteString(boxStyle.Render(strings.Join(info.Lines, "\n")))
	out.WriteString("\n")

	if info.Footer != "" {
		out.WriteString(renderFooter(info.State, info.Footer))
		out.WriteString("\n")
	}

	return out.String()
}

func renderFooter(state PanelState, footer string) string {
	switch state {
	case PanelStopped:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess + " " + footer)
	case PanelFailed:
		return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail + " " + footer)
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(footer)
	}
}
