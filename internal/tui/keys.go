package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/nav"
)

// navKey maps a terminal key to a navigation key. Everything else is
// nav.Other and falls through to cell editing.
func navKey(msg tea.KeyMsg) nav.Key {
	switch msg.Type {
	case tea.KeyTab:
		return nav.Tab
	case tea.KeyShiftTab:
		return nav.ShiftTab
	case tea.KeyUp:
		return nav.Up
	case tea.KeyDown:
		return nav.Down
	case tea.KeyLeft:
		return nav.Left
	case tea.KeyRight:
		return nav.Right
	case tea.KeyEnter:
		return nav.Enter
	case tea.KeyEsc:
		return nav.Escape
	}
	return nav.Other
}

const helpIdle = "1-4 table · enter edit · r row · c column · x/X delete · ctrl+s save · ctrl+r reload · q quit"

const helpEditing = "tab/shift+tab move · arrows move · enter next row · esc done"

const helpReadOnly = "1-4 table · enter browse · ctrl+r reload · q quit (view only)"
