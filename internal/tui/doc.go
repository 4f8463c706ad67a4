// Package tui implements the interactive terminal dashboard started with
// --tui. It is a bubbletea program: the candidate is typed into a text
// input, strategies run through the orchestration layer and progress
// arrives as messages sent by a bridge reporter.
package tui
