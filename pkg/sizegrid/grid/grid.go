// Package grid holds the in-memory model of one size chart table.
package grid

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// RowKey derives the row key of a label: lower-cased, each run of
// whitespace replaced with an underscore.
func RowKey(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
}

// Option configures a Model.
type Option func(*Model)

// WithComparator sets the comparator used to order display columns.
func WithComparator(c sizeorder.Comparator) Option {
	return func(m *Model) {
		m.cmp = c
	}
}

// Model owns the rows, columns and cells of one table.
//
// Rows keep insertion order. Matrix columns keep insertion order in storage
// and are sorted by the size comparator for display. Scalar shapes have a
// single implicit ValueColumn.
type Model struct {
	shape models.TableShape
	cfg   models.ShapeConfig
	cmp   sizeorder.Comparator

	rows  []string
	cols  []string
	cells map[string]map[string]models.Value
}

// New returns an empty table of the given shape.
func New(shape models.TableShape, opts ...Option) *Model {
	m := &Model{
		shape: shape,
		cfg:   shape.Config(),
		cmp:   sizeorder.New(nil),
		cells: make(map[string]map[string]models.Value),
	}
	if m.cfg.IsScalar {
		m.cols = []string{models.ValueColumn}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FromTable hydrates a model from its transfer form. Row keys are taken as
// stored. Matrix columns are the union of all row columns, missing cells
// are filled with the empty value; duplicate row keys keep the first row.
func FromTable(shape models.TableShape, t models.Table, opts ...Option) *Model {
	m := New(shape, opts...)

	if m.cfg.IsScalar {
		if t.Form != models.FormScalar {
			t = models.Normalize(t)
		}
		for _, r := range t.Rows {
			if _, ok := m.cells[r.Key]; ok {
				continue
			}
			m.rows = append(m.rows, r.Key)
			m.cells[r.Key] = map[string]models.Value{models.ValueColumn: r.Value}
		}
		return m
	}

	if t.Form == models.FormScalar {
		t = models.Denormalize(t)
	}
	t = firstRows(t)
	m.cols = t.Columns()
	for _, r := range t.Rows {
		row := make(map[string]models.Value, len(m.cols))
		for _, col := range m.cols {
			row[col] = models.Value{}
		}
		for _, c := range r.Cells {
			row[c.Column] = c.Value
		}
		m.rows = append(m.rows, r.Key)
		m.cells[r.Key] = row
	}
	return m
}

// firstRows drops rows whose key already appeared earlier in t.
func firstRows(t models.Table) models.Table {
	seen := make(map[string]bool, len(t.Rows))
	out := models.Table{Form: t.Form, Rows: make([]models.Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		if seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		out.Rows = append(out.Rows, r)
	}
	return out
}

// Shape returns the table shape.
func (m *Model) Shape() models.TableShape {
	return m.shape
}

// Config returns the shape configuration.
func (m *Model) Config() models.ShapeConfig {
	return m.cfg
}

// Len returns the number of rows.
func (m *Model) Len() int {
	return len(m.rows)
}

// Rows returns the row keys in insertion order.
func (m *Model) Rows() []string {
	return slices.Clone(m.rows)
}

// Columns returns the display columns: comparator order for matrix shapes,
// the implicit Value column for scalar shapes.
func (m *Model) Columns() []string {
	if m.cfg.IsScalar {
		return []string{models.ValueColumn}
	}
	return m.cmp.Sorted(m.cols)
}

// HasRow reports whether key exists.
func (m *Model) HasRow(key string) bool {
	_, ok := m.cells[key]
	return ok
}

// HasColumn reports whether column exists.
func (m *Model) HasColumn(column string) bool {
	return slices.Contains(m.cols, column)
}

// Cell returns the value at (row, column) and whether the cell exists.
func (m *Model) Cell(row, column string) (models.Value, bool) {
	r, ok := m.cells[row]
	if !ok {
		return models.Value{}, false
	}
	v, ok := r[column]
	return v, ok
}

// AddRow inserts a row keyed by the normalized label, with every column
// set to the empty value. It returns the new row key.
func (m *Model) AddRow(label string) (string, error) {
	if strings.TrimSpace(label) == "" {
		return "", newEditError(m.shape, "add_row", label, ErrEmptyLabel)
	}
	key := RowKey(label)
	if m.HasRow(key) {
		return "", newEditError(m.shape, "add_row", key, ErrDuplicateRow)
	}

	row := make(map[string]models.Value, len(m.cols))
	for _, col := range m.cols {
		row[col] = models.Value{}
	}
	m.rows = append(m.rows, key)
	m.cells[key] = row
	return key, nil
}

// RemoveRow deletes a row and its values. Unknown keys are ignored.
func (m *Model) RemoveRow(key string) {
	if !m.HasRow(key) {
		return
	}
	delete(m.cells, key)
	m.rows = slices.DeleteFunc(m.rows, func(k string) bool { return k == key })
}

// AddColumn adds column to every row with the empty value.
func (m *Model) AddColumn(label string) error {
	if strings.TrimSpace(label) == "" {
		return newEditError(m.shape, "add_column", label, ErrEmptyLabel)
	}
	if m.HasColumn(label) {
		return newEditError(m.shape, "add_column", label, ErrDuplicateColumn)
	}
	if m.cfg.MaxColumns > 0 && len(m.cols) >= m.cfg.MaxColumns {
		return newEditError(m.shape, "add_column", label, ErrMaxColumnsExceeded)
	}

	m.cols = append(m.cols, label)
	for _, row := range m.cells {
		row[label] = models.Value{}
	}
	return nil
}

// RemoveColumn deletes column from every row. Unknown columns and the
// implicit Value column of scalar shapes are ignored.
func (m *Model) RemoveColumn(column string) {
	if m.cfg.IsScalar || !m.HasColumn(column) {
		return
	}
	m.cols = slices.DeleteFunc(m.cols, func(c string) bool { return c == column })
	for _, row := range m.cells {
		delete(row, column)
	}
}

// SetCell overwrites the value at (row, column). A stale reference to a
// missing row or column is ignored.
func (m *Model) SetCell(row, column string, v models.Value) {
	r, ok := m.cells[row]
	if !ok {
		return
	}
	if _, ok := r[column]; !ok {
		return
	}
	r[column] = v
}

// Normalize returns the storage form: {row: value} for scalar shapes,
// {row: {column: value}} with columns in insertion order otherwise.
func (m *Model) Normalize() models.Table {
	if m.cfg.IsScalar {
		t := models.Table{Form: models.FormScalar, Rows: make([]models.Row, 0, len(m.rows))}
		for _, key := range m.rows {
			t.Rows = append(t.Rows, models.Row{Key: key, Value: m.cells[key][models.ValueColumn]})
		}
		return t
	}
	return m.matrix(m.cols)
}

// Denormalize returns the display form: every row as {column: value}, with
// columns in display order.
func (m *Model) Denormalize() models.Table {
	if m.cfg.IsScalar {
		return models.Denormalize(m.Normalize())
	}
	return m.matrix(m.Columns())
}

func (m *Model) matrix(cols []string) models.Table {
	t := models.Table{Form: models.FormMatrix, Rows: make([]models.Row, 0, len(m.rows))}
	for _, key := range m.rows {
		row := models.Row{Key: key, Cells: make([]models.Cell, 0, len(cols))}
		for _, col := range cols {
			row.Cells = append(row.Cells, models.Cell{Column: col, Value: m.cells[key][col]})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
