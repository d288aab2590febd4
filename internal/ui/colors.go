package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.
//   RED    -> ANSI 1
//   GREEN  -> ANSI 2
//   CYAN   -> ANSI 6
//   GRAY   -> ANSI 8 (bright black)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// LCD panel colors: the classic green-on-dark character module.
const (
	ColorPanelText   lipgloss.Color = "10" // Bright green
	ColorPanelBorder lipgloss.Color = "2"  // Green
	ColorPanelOff    lipgloss.Color = "8"  // Gray when the display is powered off
)
