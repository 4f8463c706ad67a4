package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecheck/internal/ui"
)

// Style variables for the dashboard, built from the ui theme by
// initTUIStyles.
var (
	panelStyle       lipgloss.Style
	panelTitleStyle  lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	accentStyle      lipgloss.Style
	selectedStyle    lipgloss.Style
	primeStyle       lipgloss.Style
	compositeStyle   lipgloss.Style
	warningStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style
	sparklineStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls
// it again after the theme has been chosen.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	accentStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	selectedStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true).
		Underline(true)

	primeStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	compositeStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Warning)
}
