// Package ui provides styled building blocks for one-shot CLI output:
// an ANSI color palette, status symbols and Bubbles tables.
//
// Colors are ANSI codes so they respect the terminal theme. Rendering goes
// through lipgloss, so switching the lipgloss color profile to
// termenv.Ascii turns every style monochrome.
package ui
