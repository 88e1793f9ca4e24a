package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shnupta/sessioner/internal/domain"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Attach    key.Binding
	Delete    key.Binding
	DeleteAll key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Attach: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "attach"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	DeleteAll: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete all exited"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q/esc", "quit"),
	),
	// ForceQuit works in every mode and is left out of the footer.
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Attach, k.Delete, k.DeleteAll, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Attach},
		{k.Delete, k.DeleteAll, k.Quit},
	}
}

// actionFor maps a key press onto a selection action.
func (k keyMap) actionFor(msg tea.KeyMsg) (domain.Action, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return domain.ActionMoveUp, true
	case key.Matches(msg, k.Down):
		return domain.ActionMoveDown, true
	case key.Matches(msg, k.Attach):
		return domain.ActionActivate, true
	case key.Matches(msg, k.Delete):
		return domain.ActionDeleteOne, true
	case key.Matches(msg, k.DeleteAll):
		return domain.ActionDeleteAll, true
	case key.Matches(msg, k.Quit), key.Matches(msg, k.ForceQuit):
		return domain.ActionQuit, true
	}
	return 0, false
}
