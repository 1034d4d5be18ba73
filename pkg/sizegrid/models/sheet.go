package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Form distinguishes the two storage layouts of a Table.
type Form int

const (
	// FormMatrix stores each row as column -> value.
	FormMatrix Form = iota
	// FormScalar stores each row as a single value.
	FormScalar
)

// Cell is one column/value pair of a matrix row.
type Cell struct {
	Column string
	Value  Value
}

// Row is a single table row. Matrix rows use Cells, scalar rows use Value.
type Row struct {
	Key   string
	Value Value
	Cells []Cell
}

// Lookup returns the value of column in a matrix row.
func (r Row) Lookup(column string) (Value, bool) {
	for _, c := range r.Cells {
		if c.Column == column {
			return c.Value, true
		}
	}
	return Value{}, false
}

// Table is the transfer form of one table with row and column order kept.
type Table struct {
	Form Form
	Rows []Row
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Columns returns the union of matrix columns in discovery order.
func (t Table) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range t.Rows {
		for _, c := range r.Cells {
			if !seen[c.Column] {
				seen[c.Column] = true
				cols = append(cols, c.Column)
			}
		}
	}
	return cols
}

// Denormalize converts a scalar table into its display form, where every
// row becomes {Value: v}. Matrix tables are returned as is.
func Denormalize(t Table) Table {
	if t.Form != FormScalar {
		return t
	}
	out := Table{Form: FormMatrix, Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, Row{
			Key:   r.Key,
			Cells: []Cell{{Column: ValueColumn, Value: r.Value}},
		})
	}
	return out
}

// Normalize converts a display-form scalar table back to {row: value}.
// Rows without a Value cell take their first cell, or the empty value.
func Normalize(t Table) Table {
	if t.Form == FormScalar {
		return t
	}
	out := Table{Form: FormScalar, Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		v, ok := r.Lookup(ValueColumn)
		if !ok && len(r.Cells) > 0 {
			v = r.Cells[0].Value
		}
		out.Rows = append(out.Rows, Row{Key: r.Key, Value: v})
	}
	return out
}

// MarshalJSON writes the table as a JSON object, keeping row and column order.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range t.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, r.Key); err != nil {
			return nil, err
		}
		if t.Form == FormScalar {
			b, err := r.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
			continue
		}
		buf.WriteByte('{')
		for j, c := range r.Cells {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, c.Column); err != nil {
				return nil, err
			}
			b, err := c.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}

// UnmarshalJSON reads a table object. The form is taken from the first row:
// object rows make a matrix table, anything else a scalar table.
func (t *Table) UnmarshalJSON(data []byte) error {
	*t = Table{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	entries, err := decodeOrderedObject(data)
	if err != nil {
		return fmt.Errorf("decode table: %w", err)
	}

	for i, e := range entries {
		isObject := len(e.raw) > 0 && e.raw[0] == '{'
		if i == 0 && !isObject {
			t.Form = FormScalar
		}

		row := Row{Key: e.key}
		if t.Form == FormMatrix && isObject {
			cells, err := decodeOrderedObject(e.raw)
			if err != nil {
				return fmt.Errorf("decode row %q: %w", e.key, err)
			}
			row.Cells = make([]Cell, 0, len(cells))
			for _, c := range cells {
				var v Value
				if err := v.UnmarshalJSON(c.raw); err != nil {
					return fmt.Errorf("decode cell %q/%q: %w", e.key, c.key, err)
				}
				row.Cells = append(row.Cells, Cell{Column: c.key, Value: v})
			}
		} else {
			if err := row.Value.UnmarshalJSON(e.raw); err != nil {
				return fmt.Errorf("decode row %q: %w", e.key, err)
			}
			if t.Form == FormMatrix {
				// a stray scalar inside a matrix table lands in the Value column
				row.Cells = []Cell{{Column: ValueColumn, Value: row.Value}}
				row.Value = Value{}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return nil
}

type rawEntry struct {
	key string
	raw json.RawMessage
}

// decodeOrderedObject splits a JSON object into its members in source order.
func decodeOrderedObject(data []byte) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []rawEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, rawEntry{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
