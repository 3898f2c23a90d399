package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the dashboard key bindings.
type keyMap struct {
	Drink   key.Binding
	Snooze  key.Binding
	Longer  key.Binding
	Shorter key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Drink: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "drank"),
	),
	Snooze: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "snooze"),
	),
	Longer: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "interval"),
	),
	Shorter: key.NewBinding(
		key.WithKeys("-", "_"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drink, k.Snooze, k.Longer, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	h := help.New()
	h.Styles.ShortKey = StyleHelpKey
	h.Styles.ShortDesc = StyleHelpDesc
	return StyleHelp.Render(h.View(keys))
}
