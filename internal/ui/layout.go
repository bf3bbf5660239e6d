package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the detail pane is hidden.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth gives the grid a larger share of the screen.
	LayoutExtraWideWidth = 160
)

// Card geometry, including borders.
const (
	CardWidth  = 30
	CardHeight = 8
	cardGap    = 1
)

// Chrome rows outside the content area: header, search bar (3) and command bar.
const chromeHeight = 5

// Log view limits.
const (
	// LogBufferLimit is the maximum number of log lines read from the tail.
	LogBufferLimit = 2000

	// LogRefreshInterval is how often the log view re-reads the file while
	// following.
	LogRefreshInterval = 2 * time.Second
)
