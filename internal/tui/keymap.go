package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the drill dashboard.
type KeyMap struct {
	Start      key.Binding
	Stop       key.Binding
	Again      key.Binding
	Quit       key.Binding
	ToggleMode key.Binding
	Step       key.Binding
	CountUp    key.Binding
	CountDown  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/esc", "stop"),
		),
		Again: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		Step: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "step"),
		),
		CountUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "count"),
		),
		CountDown: key.NewBinding(
			key.WithKeys("-"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Again, k.Step, k.ToggleMode, k.CountUp, k.Quit}
}
