// Package format holds the presentation-neutral formatting helpers shared by
// the CLI, the TUI and the report writers: durations, thousands separators,
// progress bars and ETA estimation.
package format
