package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/grid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/nav"
)

type fakeGateway struct {
	charts  map[string]models.ChartData
	saveErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{charts: make(map[string]models.ChartData)}
}

func (g *fakeGateway) Load(_ context.Context, id string) (models.ChartData, error) {
	data, ok := g.charts[id]
	if !ok {
		return models.ChartData{}, fmt.Errorf("chart %q not found", id)
	}
	return data, nil
}

func (g *fakeGateway) Save(_ context.Context, id string, payload models.ChartData) (string, error) {
	if g.saveErr != nil {
		return "", g.saveErr
	}
	if id == "" {
		id = fmt.Sprintf("chart-%d", len(g.charts)+1)
	}
	g.charts[id] = payload
	return id, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// press feeds msgs through Update. Save and reload commands are run inline
// and their results fed back; other commands (cursor blink) are dropped.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		k, ok := msg.(tea.KeyMsg)
		if cmd == nil || !ok || (k.Type != tea.KeyCtrlS && k.Type != tea.KeyCtrlR) {
			continue
		}
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func newEditor(t *testing.T, gw *fakeGateway, readOnly bool) Model {
	t.Helper()
	opts := sizegrid.DefaultOptions()
	opts.ReadOnly = readOnly
	return New(context.Background(), sizegrid.NewSession(gw, opts), gw, "")
}

func TestNavKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want nav.Key
	}{
		{key(tea.KeyTab), nav.Tab},
		{key(tea.KeyShiftTab), nav.ShiftTab},
		{key(tea.KeyUp), nav.Up},
		{key(tea.KeyDown), nav.Down},
		{key(tea.KeyLeft), nav.Left},
		{key(tea.KeyRight), nav.Right},
		{key(tea.KeyEnter), nav.Enter},
		{key(tea.KeyEsc), nav.Escape},
		{runes("a"), nav.Other},
		{key(tea.KeyBackspace), nav.Other},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, navKey(tt.msg))
		})
	}
}

func TestEditor_AddRowAndColumnThroughPrompt(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)

	m = press(t, m, runes("r"), runes("Chest Width"), key(tea.KeyEnter))
	assert.Equal(t, "added row chest_width", m.Status())

	m = press(t, m, runes("c"), runes("M"), key(tea.KeyEnter))
	m = press(t, m, runes("c"), runes("S"), key(tea.KeyEnter))

	table := m.Session().Table(models.ShapeMeasurements)
	assert.Equal(t, []string{"chest_width"}, table.Rows())
	assert.Equal(t, []string{"S", "M"}, table.Columns())

	m = press(t, m, runes("c"), runes("M"), key(tea.KeyEnter))
	assert.Contains(t, m.Status(), grid.ErrDuplicateColumn.Error())
}

func TestEditor_PromptEscapeCancels(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)

	m = press(t, m, runes("r"), runes("hip"), key(tea.KeyEsc))
	assert.Equal(t, 0, m.Session().Table(models.ShapeMeasurements).Len())
	assert.Equal(t, promptNone, m.prompt)
}

func TestEditor_TypingEditsFocusedCell(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)
	m = press(t, m,
		runes("r"), runes("chest"), key(tea.KeyEnter),
		runes("c"), runes("S"), key(tea.KeyEnter),
		runes("c"), runes("M"), key(tea.KeyEnter),
	)

	m = press(t, m, key(tea.KeyEnter))
	require.True(t, m.Session().Navigator().State().Focused)
	assert.Equal(t, nav.Position{Row: "chest", Column: "S"}, m.Session().Navigator().State().Cursor)

	m = press(t, m, runes("9"), runes("1"), key(tea.KeyBackspace), runes("0"))
	v, _ := m.Session().Table(models.ShapeMeasurements).Cell("chest", "S")
	assert.Equal(t, models.Number(90), v)

	m = press(t, m, key(tea.KeyTab), runes("96"))
	v, _ = m.Session().Table(models.ShapeMeasurements).Cell("chest", "M")
	assert.Equal(t, models.Number(96), v)

	m = press(t, m, key(tea.KeyEsc))
	assert.False(t, m.Session().Navigator().State().Focused)
}

func TestEditor_MatrixCellsKeepWhatWasTyped(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)
	m = press(t, m,
		runes("r"), runes("chest"), key(tea.KeyEnter),
		runes("c"), runes("S"), key(tea.KeyEnter),
		runes("c"), runes("M"), key(tea.KeyEnter),
		key(tea.KeyEnter),
	)

	m = press(t, m, runes("1"), runes("."), runes("5"), runes("0"))
	m = press(t, m, key(tea.KeyTab), runes("n"), runes("a"), runes("n"))

	table := m.Session().Table(models.ShapeMeasurements)
	v, _ := table.Cell("chest", "S")
	assert.Equal(t, models.Text("1.50"), v)
	v, _ = table.Cell("chest", "M")
	assert.Equal(t, models.Text("nan"), v)

	data, err := json.Marshal(m.Session().Payload())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chest":{"S":"1.50","M":"nan"}`)

	m = press(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, "1.50", m.buffer)
}

func TestEditor_ScalarCellsKeepText(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)
	m = press(t, m, runes("2"), runes("r"), runes("chest"), key(tea.KeyEnter), key(tea.KeyEnter))
	require.Equal(t, models.ShapeGradingRules, m.Session().Active())

	m = press(t, m, runes("+2"))
	v, _ := m.Session().Table(models.ShapeGradingRules).Cell("chest", models.ValueColumn)
	assert.Equal(t, models.Text("+2"), v)
}

func TestEditor_RemoveRowUnderCursor(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)
	m = press(t, m,
		runes("r"), runes("chest"), key(tea.KeyEnter),
		runes("r"), runes("waist"), key(tea.KeyEnter),
		runes("c"), runes("S"), key(tea.KeyEnter),
		key(tea.KeyEnter), key(tea.KeyDown), key(tea.KeyEsc),
		runes("x"),
	)
	assert.Equal(t, []string{"chest"}, m.Session().Table(models.ShapeMeasurements).Rows())
}

func TestEditor_SaveAndReload(t *testing.T) {
	gw := newFakeGateway()
	m := newEditor(t, gw, false)
	m = press(t, m, runes("n"), runes("Tee"), key(tea.KeyEnter))
	m = press(t, m, key(tea.KeyCtrlS))

	assert.Equal(t, "chart-1", m.Session().ID())
	assert.Equal(t, "saved chart-1", m.Status())
	assert.Equal(t, "Tee", gw.charts["chart-1"].Name)

	m = press(t, m, runes("n"), runes("Changed"), key(tea.KeyEnter))
	m = press(t, m, key(tea.KeyCtrlR))
	assert.Equal(t, "Tee", m.Session().Metadata().Name)
	assert.Equal(t, "loaded chart-1", m.Status())
}

func TestEditor_SaveFailureKeepsEdits(t *testing.T) {
	gw := newFakeGateway()
	gw.saveErr = errors.New("disk full")
	m := newEditor(t, gw, false)

	m = press(t, m, runes("r"), runes("chest"), key(tea.KeyEnter), key(tea.KeyCtrlS))
	assert.Equal(t, "save failed: disk full", m.Status())
	assert.Empty(t, m.Session().ID())
	assert.Equal(t, 1, m.Session().Table(models.ShapeMeasurements).Len())
}

func TestEditor_InitLoadsChart(t *testing.T) {
	gw := newFakeGateway()
	gw.charts["c1"] = models.ChartData{ChartMetadata: models.ChartMetadata{Name: "Dress"}}
	m := New(context.Background(), sizegrid.NewSession(gw, sizegrid.DefaultOptions()), gw, "c1")

	cmd := m.Init()
	require.NotNil(t, cmd)
	m = press(t, m, cmd())
	assert.Equal(t, "Dress", m.Session().Metadata().Name)
	assert.Contains(t, m.View(), "Dress")
}

func TestEditor_ReadOnly(t *testing.T) {
	gw := newFakeGateway()
	gw.charts["c1"] = models.ChartData{
		Measurements: models.Table{Rows: []models.Row{
			{Key: "chest", Cells: []models.Cell{{Column: "S", Value: models.Number(90)}}},
		}},
	}
	opts := sizegrid.DefaultOptions()
	opts.ReadOnly = true
	m := New(context.Background(), sizegrid.NewSession(gw, opts), gw, "c1")
	m = press(t, m, m.Init()())

	m = press(t, m, runes("r"))
	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, sizegrid.ErrReadOnly.Error(), m.Status())

	m = press(t, m, key(tea.KeyEnter), runes("1"))
	v, _ := m.Session().Table(models.ShapeMeasurements).Cell("chest", "S")
	assert.Equal(t, models.Number(90), v)

	m = press(t, m, key(tea.KeyEsc), key(tea.KeyCtrlS))
	assert.Equal(t, sizegrid.ErrReadOnly.Error(), m.Status())
	assert.Contains(t, m.View(), "VIEW ONLY")
}

func TestEditor_View(t *testing.T) {
	m := newEditor(t, newFakeGateway(), false)
	assert.Contains(t, m.View(), "Untitled chart")
	assert.Contains(t, m.View(), "Press r to add one")

	m = press(t, m, runes("r"), runes("chest"), key(tea.KeyEnter), runes("c"), runes("XL"), key(tea.KeyEnter))
	out := m.View()
	assert.Contains(t, out, "Measurement Point")
	assert.Contains(t, out, "chest")
	assert.Contains(t, out, "XL")
}
