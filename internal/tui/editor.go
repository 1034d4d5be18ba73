// Package tui is the terminal host for a chart editing session. It turns
// key presses into navigation events and cell edits, and runs gateway
// calls as bubbletea commands so the event loop never blocks.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/ukaji3/sizegrid-go/internal/logging"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/nav"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptRow
	promptColumn
	promptName
	promptMarket
	promptUnit
)

var promptLabels = map[promptKind]string{
	promptRow:    "new row: ",
	promptColumn: "new column: ",
	promptName:   "name: ",
	promptMarket: "market: ",
	promptUnit:   "unit: ",
}

type loadedMsg struct{ res sizegrid.LoadResult }

type savedMsg struct{ res sizegrid.SaveResult }

// Model is the bubbletea model of the editor.
type Model struct {
	ctx     context.Context
	session *sizegrid.Session
	gateway sizegrid.Gateway
	log     zerolog.Logger

	initialID string

	prompt promptKind
	input  textinput.Model

	// buffer holds the text of the focused cell while it is being typed.
	buffer string
	status string
	width  int
}

// New returns an editor over session. When id is not empty the chart is
// loaded on start.
func New(ctx context.Context, session *sizegrid.Session, gw sizegrid.Gateway, id string) Model {
	in := textinput.New()
	in.CharLimit = 64
	return Model{
		ctx:       ctx,
		session:   session,
		gateway:   gw,
		log:       logging.Component("tui"),
		initialID: id,
		input:     in,
	}
}

// Run starts the editor on the terminal and blocks until it quits.
func Run(ctx context.Context, session *sizegrid.Session, gw sizegrid.Gateway, id string) error {
	p := tea.NewProgram(New(ctx, session, gw, id), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.initialID == "" {
		return nil
	}
	return m.load(m.initialID)
}

// Session returns the session being edited.
func (m Model) Session() *sizegrid.Session {
	return m.session
}

// Status returns the status line message.
func (m Model) Status() string {
	return m.status
}

func (m *Model) load(id string) tea.Cmd {
	req := m.session.BeginLoad(id)
	m.status = "loading " + id + "..."
	ctx, gw := m.ctx, m.gateway
	return func() tea.Msg {
		return loadedMsg{res: req.Fetch(ctx, gw)}
	}
}

func (m *Model) save() tea.Cmd {
	req, err := m.session.BeginSave()
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.status = "saving..."
	ctx, gw := m.ctx, m.gateway
	return func() tea.Msg {
		return savedMsg{res: req.Send(ctx, gw)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		ok, err := m.session.ApplyLoad(msg.res)
		switch {
		case err != nil:
			m.status = "load failed: " + err.Error()
		case ok:
			m.status = "loaded " + m.session.ID()
			m.resetBuffer()
		}
		return m, nil

	case savedMsg:
		id, err := m.session.ApplySave(msg.res)
		if err != nil {
			m.status = "save failed: " + err.Error()
			return m, nil
		}
		m.status = "saved " + id
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			return m, m.save()
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.session.Navigator().State().Focused {
			return m.updateFocused(msg)
		}
		return m.updateIdle(msg)
	}
	return m, nil
}

func (m Model) updateIdle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.session.Navigator()
	cursor := ctrl.State().Cursor

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4":
		shape := models.Shapes[int(key[0]-'1')]
		if err := m.session.Select(shape); err != nil {
			m.status = err.Error()
		} else {
			m.status = shape.Config().Title
		}
		return m, nil
	case "enter", "f":
		if !m.session.Focus(cursor) && !ctrl.FocusFirst() {
			m.status = "table is empty"
			return m, nil
		}
		m.resetBuffer()
		return m, nil
	case "ctrl+r":
		if m.session.ID() == "" {
			m.status = "chart has not been saved"
			return m, nil
		}
		return m, m.load(m.session.ID())
	case "r":
		return m.openPrompt(promptRow)
	case "c":
		return m.openPrompt(promptColumn)
	case "n":
		return m.openPrompt(promptName)
	case "m":
		return m.openPrompt(promptMarket)
	case "u":
		return m.openPrompt(promptUnit)
	case "x":
		m.report(m.session.RemoveRow(cursor.Row))
		return m, nil
	case "X":
		m.report(m.session.RemoveColumn(cursor.Column))
		return m, nil
	}

	m.session.HandleKey(navKey(msg))
	return m, nil
}

func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key := navKey(msg); key != nav.Other {
		before := m.session.Navigator().State()
		after, _ := m.session.HandleKey(key)
		if after != before {
			m.resetBuffer()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.buffer += string(msg.Runes)
	case tea.KeySpace:
		m.buffer += " "
	case tea.KeyBackspace:
		if r := []rune(m.buffer); len(r) > 0 {
			m.buffer = string(r[:len(r)-1])
		}
	default:
		return m, nil
	}
	m.commit()
	return m, nil
}

func (m Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	if m.session.ReadOnly() {
		m.status = sizegrid.ErrReadOnly.Error()
		return m, nil
	}
	m.prompt = kind
	m.input.Prompt = promptLabels[kind]
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		switch m.prompt {
		case promptRow:
			key, err := m.session.AddRow(value)
			if err == nil {
				m.status = "added row " + key
			}
			m.report(err)
		case promptColumn:
			err := m.session.AddColumn(value)
			if err == nil {
				m.status = "added column " + value
			}
			m.report(err)
		case promptName:
			m.report(m.session.SetName(value))
		case promptMarket:
			m.report(m.session.SetMarket(value))
		case promptUnit:
			m.report(m.session.SetUnit(value))
		}
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
}

// commit writes the edit buffer to the focused cell. Matrix cells store
// plain decimals as numbers and everything else as typed; scalar values
// are always kept as typed.
func (m *Model) commit() {
	pos := m.session.Navigator().State().Cursor
	v := models.Text(m.buffer)
	if !m.session.Active().Config().IsScalar {
		v = models.ParseValue(m.buffer)
	}
	if err := m.session.SetCell(pos.Row, pos.Column, v); err != nil {
		m.status = err.Error()
	}
}

// resetBuffer seeds the edit buffer from the cell under the cursor.
func (m *Model) resetBuffer() {
	pos := m.session.Navigator().State().Cursor
	v, _ := m.session.Table(m.session.Active()).Cell(pos.Row, pos.Column)
	m.buffer = v.String()
}

func (m *Model) report(err error) {
	if err != nil {
		m.log.Debug().Err(err).Msg("edit rejected")
		m.status = err.Error()
	}
}
