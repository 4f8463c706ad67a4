package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecheck/internal/format"
)

// HeaderModel renders the top bar: title, version, active strategy and
// the elapsed time of the current run.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	strategy  string
	width     int
}

// NewHeaderModel creates a header with a stopped timer.
func NewHeaderModel(version string) HeaderModel {
	now := time.Now()
	return HeaderModel{startTime: now, endTime: now, version: version}
}

// Start restarts the elapsed timer.
func (h *HeaderModel) Start() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetStrategy updates the strategy label.
func (h *HeaderModel) SetStrategy(name string) { h.strategy = name }

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the duration of the current or last run.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "primecheck"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")

	left := titleStyle.Render(titleText) + pipe +
		accentStyle.Render("Strategy: "+h.strategy) + pipe +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Render(left + strings.Repeat(" ", gap))
}
