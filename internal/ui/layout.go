package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutTimestampsWidth is the minimum width to show the Updated column.
	LayoutTimestampsWidth = 110
)

// Table column widths.
const (
	yearColumnWidth    = 6
	updatedColumnWidth = 17
	minTitleWidth      = 12
)

// Activity log limits.
const (
	// LogTailLines is the number of log lines read per refresh.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// NoticeDuration is how long transient notices stay visible.
	NoticeDuration = 4 * time.Second
)
