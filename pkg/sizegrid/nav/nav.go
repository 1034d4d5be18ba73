// Package nav implements keyboard navigation over a table snapshot.
//
// Transition is a pure function from (snapshot, state, key) to the next
// state. It never performs a focus action itself; the host translates the
// returned cursor into whatever focus call its UI layer needs.
package nav

import (
	"fmt"
	"slices"
)

// Key is a navigation key event.
type Key int

const (
	// Other is any key the controller does not interpret.
	Other Key = iota
	Tab
	ShiftTab
	Up
	Down
	Left
	Right
	Enter
	Escape
)

var keyNames = map[Key]string{
	Other:    "other",
	Tab:      "tab",
	ShiftTab: "shift+tab",
	Up:       "up",
	Down:     "down",
	Left:     "left",
	Right:    "right",
	Enter:    "enter",
	Escape:   "esc",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Position addresses one cell by row key and column key.
type Position struct {
	Row    string
	Column string
}

// State is the cursor plus whether a cell is focused for editing.
// The zero State is unfocused.
type State struct {
	Cursor  Position
	Focused bool
}

// Transition computes the next state for key. The second result reports
// whether the key was consumed; Other is never consumed and leaves the
// state for the host to interpret as a content edit.
//
// Keys arriving while unfocused, or while the cursor points at a row or
// column missing from the snapshot, are consumed without movement.
func Transition(rows, cols []string, s State, key Key) (State, bool) {
	if key == Other {
		return s, false
	}
	if !s.Focused {
		return s, true
	}
	if key == Escape {
		s.Focused = false
		return s, true
	}

	ri := slices.Index(rows, s.Cursor.Row)
	ci := slices.Index(cols, s.Cursor.Column)
	if ri < 0 || ci < 0 {
		return s, true
	}
	lastRow, lastCol := len(rows)-1, len(cols)-1

	switch key {
	case Tab:
		switch {
		case ci < lastCol:
			ci++
		case ri < lastRow:
			ri, ci = ri+1, 0
		}
	case ShiftTab:
		switch {
		case ci > 0:
			ci--
		case ri > 0:
			ri, ci = ri-1, lastCol
		}
	case Up:
		if ri > 0 {
			ri--
		}
	case Down:
		if ri < lastRow {
			ri++
		}
	case Left:
		if ci > 0 {
			ci--
		}
	case Right:
		if ci < lastCol {
			ci++
		}
	case Enter:
		if ri < lastRow {
			ri++
		} else {
			ri = 0
		}
	}

	s.Cursor = Position{Row: rows[ri], Column: cols[ci]}
	return s, true
}

// Controller keeps a table snapshot and the navigation state for it.
type Controller struct {
	rows  []string
	cols  []string
	state State
}

// NewController returns an unfocused controller over rows and cols.
func NewController(rows, cols []string) *Controller {
	return &Controller{
		rows: slices.Clone(rows),
		cols: slices.Clone(cols),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Rows returns the row snapshot.
func (c *Controller) Rows() []string {
	return slices.Clone(c.rows)
}

// Columns returns the column snapshot.
func (c *Controller) Columns() []string {
	return slices.Clone(c.cols)
}

// Focus moves focus to pos. It reports false, leaving the state unchanged,
// when pos is not part of the snapshot.
func (c *Controller) Focus(pos Position) bool {
	if !slices.Contains(c.rows, pos.Row) || !slices.Contains(c.cols, pos.Column) {
		return false
	}
	c.state = State{Cursor: pos, Focused: true}
	return true
}

// FocusFirst focuses the top-left cell, if any.
func (c *Controller) FocusFirst() bool {
	if len(c.rows) == 0 || len(c.cols) == 0 {
		return false
	}
	return c.Focus(Position{Row: c.rows[0], Column: c.cols[0]})
}

// Blur clears focus, keeping the cursor.
func (c *Controller) Blur() {
	c.state.Focused = false
}

// Handle applies key and returns the next state and whether it was consumed.
func (c *Controller) Handle(key Key) (State, bool) {
	next, ok := Transition(c.rows, c.cols, c.state, key)
	c.state = next
	return next, ok
}

// Sync replaces the snapshot after a structural edit. When the focused
// cell no longer exists, focus is dropped.
func (c *Controller) Sync(rows, cols []string) {
	c.rows = slices.Clone(rows)
	c.cols = slices.Clone(cols)
	if c.state.Focused && (!slices.Contains(c.rows, c.state.Cursor.Row) || !slices.Contains(c.cols, c.state.Cursor.Column)) {
		c.state.Focused = false
	}
}
