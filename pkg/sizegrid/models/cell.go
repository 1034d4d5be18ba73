// Package models defines data structures for size chart tables.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a single cell value: text or a number.
// The zero Value is the empty string, the "unset" value.
type Value struct {
	text   string
	num    float64
	number bool
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{text: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{num: f, number: true}
}

// IsEmpty reports whether v is the unset value.
func (v Value) IsEmpty() bool {
	return !v.number && v.text == ""
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.number
}

// Float returns the numeric value and whether v is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.number
}

// String returns the display text of v.
func (v Value) String() string {
	if v.number {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Interface returns v as a string or float64, suitable for spreadsheet writers.
func (v Value) Interface() interface{} {
	if v.number {
		return v.num
	}
	return v.text
}

// ParseValue parses s as a number when it is a plain decimal that prints
// back unchanged ("96", "72.5", "-3"). Anything else, including "1.50",
// "07", "1e3", "nan" and "inf", stays text exactly as given.
func ParseValue(s string) Value {
	if s == "" {
		return Value{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && finite(f) && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return Number(f)
	}
	return Text(s)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
// NaN and infinities have no JSON form and are rejected.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.number {
		if !finite(v.num) {
			return nil, fmt.Errorf("unsupported number %v", v.num)
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts strings, numbers, booleans and null. Objects with a
// "Rule" key decode to that rule; other objects keep their raw JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = Value{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &v.text)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		v.text = strconv.FormatBool(b)
		return nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if rule, ok := obj["Rule"]; ok {
			return v.UnmarshalJSON(rule)
		}
		v.text = string(data)
		return nil
	case '[':
		v.text = string(data)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = Number(f)
	return nil
}
