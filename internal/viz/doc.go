// Package viz renders benchmark output for the terminal: lipgloss styles for
// headings and verdicts, sparklines of per-call times and asciigraph plots of
// segment sweeps.
package viz
