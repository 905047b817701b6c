package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for line-mode output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is used for the number being read out.
	Primary string
	// Secondary is used for the narration prefix and the drill log.
	Secondary string
	// Success is used for the revealed answer.
	Success string
	// Warning is used for settings the drill refuses, such as step 3 without subtraction.
	Warning string
	// Error is used for generation failures.
	Error string
	// Info is used for status and progress lines.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// SumiTheme is the default theme for dark terminals: vermilion numbers on ink.
	SumiTheme = Theme{
		Name:      "sumi",
		Primary:   "\033[38;5;202m", // Vermilion
		Secondary: "\033[38;5;250m", // Light grey
		Success:   "\033[38;5;114m", // Soft green
		Warning:   "\033[38;5;221m", // Gold
		Error:     "\033[38;5;203m", // Salmon red
		Info:      "\033[38;5;110m", // Pale blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// WashiTheme is for light terminal backgrounds.
	WashiTheme = Theme{
		Name:      "washi",
		Primary:   "\033[38;5;160m", // Crimson
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Brown
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;25m",  // Indigo
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = SumiTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the drill dashboard.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Number  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// SumiTUITheme is the default dashboard palette.
	SumiTUITheme = TUITheme{
		Text:    lipgloss.Color("#E6E1D6"),
		Border:  lipgloss.Color("#8C6A4F"),
		Accent:  lipgloss.Color("#E85D2A"),
		Number:  lipgloss.Color("#F4D35E"),
		Success: lipgloss.Color("#8FBF7F"),
		Warning: lipgloss.Color("#F2B950"),
		Error:   lipgloss.Color("#F25C54"),
		Dim:     lipgloss.Color("#6B6B6B"),
	}

	// NoColorTUITheme renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Number:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return SumiTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name: "sumi", "washi" or "none".
// Unknown names select sumi.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "washi":
		currentTheme = WashiTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = SumiTheme
	}
}

// InitTheme selects the theme from the --no-color flag and the environment.
// NO_COLOR (https://no-color.org/) disables colors; SOROBAN_THEME picks a
// named theme otherwise.
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetTheme("none")
		return
	}
	SetTheme(os.Getenv("SOROBAN_THEME"))
}
