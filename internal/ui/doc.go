// Package ui holds the colour themes shared by the line-oriented CLI and the
// TUI. Colour functions read the active theme, so switching to the "none"
// theme (--no-color or NO_COLOR) silences every escape sequence at once.
package ui
