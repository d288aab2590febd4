// Package ui provides terminal output for lcdmon's interactive commands.
//
// # Components Overview
//
//	RenderPanel     - draws simulated LCD contents in a Lip Gloss box
//	Screen          - in-place redraw on a terminal (termenv), append otherwise
//	PickInterfaces  - interactive interface selection using Huh forms
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Footer after a clean stop
//	ColorError     (red)    - Footer after polling failed
//	ColorInfo      (cyan)   - Titles
//	ColorMuted     (gray)   - Secondary text
//	ColorPanel*             - the simulated LCD itself
package ui
