package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/soroban/internal/ui"
)

// Style variables for the drill dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	settingsStyle      lipgloss.Style
	phraseStyle        lipgloss.Style
	numberStyle        lipgloss.Style
	progressStyle      lipgloss.Style
	logStyle           lipgloss.Style
	traceStyle         lipgloss.Style
	headlineStyle      lipgloss.Style
	answerStyle        lipgloss.Style
	warningStyle       lipgloss.Style
	errorStyle         lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusReadyStyle   lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusDoneStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all dashboard styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	settingsStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	phraseStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	numberStyle = lipgloss.NewStyle().
		Foreground(t.Number).
		Bold(true)

	progressStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	logStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	traceStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	headlineStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	answerStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	warningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusReadyStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Bold(true)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
}
