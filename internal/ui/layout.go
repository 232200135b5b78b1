package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160

	// listMinWidth keeps "#1025 ◌ Name" readable in narrow terminals.
	listMinWidth = 28
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the store.
	DefaultUIInterval = 250 * time.Millisecond
)

// maxBaseStat scales the stat bars.
const maxBaseStat = 255
