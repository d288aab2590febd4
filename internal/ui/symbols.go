package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Polling stopped cleanly
	SymbolFail    = "✗" // Polling ended with an error
	SymbolPending = "○" // Waiting on the first frame
	SymbolLive    = "●" // Display is on and polling
)
