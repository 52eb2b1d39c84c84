// Package monitor renders telemetry snapshots as a terminal dashboard.
//
// Render draws a single snapshot as plain panels and is used for one-shot
// output. Model wraps a Refresher in a Bubble Tea program that refreshes
// once per interval and keeps a short history for the CPU and GPU
// sparklines.
//
// # Layout
//
// Panels are stacked in a fixed order:
//
//	Board, CPU, Memory, GPU, System, Fan, Disk, Engines
//	Network | Thermal | Power
//
// The bottom row is split into thirds when the terminal is at least 96
// columns wide and stacked otherwise. Absent metrics render as "-".
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	Esc         - Close help
//	?           - Toggle help overlay
package monitor
